package domain

import (
	"errors"
	"fmt"
	"math"

	m "cify.dev/pkg/cify/internal/model"
)

// inverseSquareSpan maps the range onto displacements 1..16, so the far edge
// attenuates to 1/256 before clamping to zero.
const inverseSquareSpan = 15

var (
	// ErrInvalidRange is returned when the minimum distance is not below the maximum.
	ErrInvalidRange = errors.New("invalid distance range")
	// ErrUnknownCurve is returned for a curve name that is not in model.Curves.
	ErrUnknownCurve = errors.New("unknown curve")
)

// ValidateRange checks that r describes a non-empty, finite interval.
func ValidateRange(r m.DistanceRange) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	}

	if r.Min >= r.Max {
		return fmt.Errorf("%w: min %g must be below max %g", ErrInvalidRange, r.Min, r.Max)
	}

	return nil
}

// Linear is 1 up to r.Min, 0 from r.Max, and falls linearly in between.
func Linear(r m.DistanceRange, d float64) float64 {
	switch {
	case d <= r.Min:
		return 1
	case d >= r.Max:
		return 0
	}

	return (d - r.Max) / (r.Min - r.Max)
}

// InverseSquare applies 1/v² where v grows from 1 at r.Min to 16 at r.Max.
func InverseSquare(r m.DistanceRange, d float64) float64 {
	switch {
	case d <= r.Min:
		return 1
	case d >= r.Max:
		return 0
	}

	h := (d - r.Min) / (r.Max - r.Min)
	v := h*inverseSquareSpan + 1

	return 1 / (v * v)
}

// LinearSquare is Linear squared.
func LinearSquare(r m.DistanceRange, d float64) float64 {
	l := Linear(r, d)
	return l * l
}

// Factor evaluates the named curve at distance d.
func Factor(curve m.Curve, r m.DistanceRange, d float64) (float64, error) {
	switch curve {
	case m.CurveLinear:
		return Linear(r, d), nil
	case m.CurveInverseSquare:
		return InverseSquare(r, d), nil
	case m.CurveLinearSquare:
		return LinearSquare(r, d), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
}

// SampleCurves evaluates every curve at count evenly spaced distances from
// from to to, both ends included.
func SampleCurves(r m.DistanceRange, from, to float64, count int) ([]m.CurveSample, error) {
	if err := ValidateRange(r); err != nil {
		return nil, err
	}

	if count < 2 {
		return nil, fmt.Errorf("sample count must be at least 2, got %d", count)
	}

	if from > to {
		return nil, fmt.Errorf("sample start %g is past sample end %g", from, to)
	}

	step := (to - from) / float64(count-1)
	samples := make([]m.CurveSample, 0, count)

	for i := range count {
		d := from + step*float64(i)
		if i == count-1 {
			d = to
		}

		sample := m.CurveSample{Distance: d, Factors: make(map[m.Curve]float64, len(m.Curves))}

		for _, curve := range m.Curves {
			f, err := Factor(curve, r, d)
			if err != nil {
				return nil, err
			}

			sample.Factors[curve] = f
		}

		samples = append(samples, sample)
	}

	return samples, nil
}
