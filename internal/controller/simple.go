package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "cify.dev/pkg/cify/internal/model"
)

// SimpleUI implements UI using the cobra command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

type curvesDocument struct {
	Range   m.DistanceRange `yaml:"range"`
	Samples []m.CurveSample `yaml:"samples"`
}

// DisplayCurves prints the sampled falloff curves as a table or YAML document.
func (s *SimpleUI) DisplayCurves(ctx context.Context, r m.DistanceRange, samples []m.CurveSample, options ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := DisplayConfig{format: FormatTable}
	for _, opt := range options {
		opt(&cfg)
	}

	switch cfg.format {
	case FormatYAML:
		out, err := yaml.Marshal(curvesDocument{Range: r, Samples: samples})
		if err != nil {
			return fmt.Errorf("failed to encode curves: %w", err)
		}

		s.printf("%s", out)
	default:
		s.printf("%s", renderCurvesTable(r, samples))
	}

	return nil
}

// DisplayFragment reports where a fragment was written. It prints to the
// error stream so stdout only ever carries generated source.
func (s *SimpleUI) DisplayFragment(ctx context.Context, fragment m.Fragment) {
	if err := ctx.Err(); err != nil {
		return
	}

	if fragment.Destination.IsStdout() {
		return
	}

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "wrote g_%s (%s) to %s\n",
		fragment.Symbol, humanize.Bytes(fragment.Size), fragment.Destination)
}

func renderCurvesTable(r m.DistanceRange, samples []m.CurveSample) string {
	var tableBuffer bytes.Buffer

	header := []string{"Distance"}
	alignment := []int{tablewriter.ALIGN_RIGHT}

	for _, curve := range m.Curves {
		header = append(header, string(curve))
		alignment = append(alignment, tablewriter.ALIGN_RIGHT)
	}

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment(alignment)

	for _, sample := range samples {
		row := []string{strconv.FormatFloat(sample.Distance, 'f', 1, 64)}
		for _, curve := range m.Curves {
			row = append(row, strconv.FormatFloat(sample.Factors[curve], 'f', 4, 64))
		}

		table.Append(row)
	}

	footer := make([]string, len(header))
	footer[0] = fmt.Sprintf("min %g / max %g", r.Min, r.Max)
	table.SetFooter(footer)

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
