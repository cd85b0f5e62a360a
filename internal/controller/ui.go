// Package controller provides output adapters for displaying cify results.
package controller

import (
	"context"
	"fmt"

	m "cify.dev/pkg/cify/internal/model"
)

// Format selects how results are rendered.
type Format string

// Available Format values.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unsupported format %q (want %s or %s)", value, FormatTable, FormatYAML)
}

// DisplayOption is a functional option for display methods.
type DisplayOption func(*DisplayConfig)

// DisplayConfig holds configuration for a display call.
type DisplayConfig struct {
	format Format
}

// WithFormat sets the output format.
func WithFormat(format Format) DisplayOption {
	return func(c *DisplayConfig) {
		c.format = format
	}
}

// UI defines the interface for displaying command results.
type UI interface {
	DisplayCurves(ctx context.Context, r m.DistanceRange, samples []m.CurveSample, options ...DisplayOption) error
	DisplayFragment(ctx context.Context, fragment m.Fragment)
}
