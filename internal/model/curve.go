package model

// Curve names a distance-to-attenuation falloff function.
type Curve string

const (
	// CurveLinear falls off linearly between the minimum and maximum distance.
	CurveLinear Curve = "linear"
	// CurveInverseSquare applies the inverse square law over a 1..16 displacement.
	CurveInverseSquare Curve = "inverse-square"
	// CurveLinearSquare is the linear curve squared.
	CurveLinearSquare Curve = "linear-square"
)

// Curves lists every known curve in display order.
var Curves = []Curve{CurveLinear, CurveInverseSquare, CurveLinearSquare}

// DistanceRange holds the distances where attenuation starts and where it reaches zero.
type DistanceRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// CurveSample is one distance with the factor computed by each curve.
type CurveSample struct {
	Distance float64           `yaml:"distance"`
	Factors  map[Curve]float64 `yaml:"factors"`
}
