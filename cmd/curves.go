package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cify.dev/pkg/cify/internal/controller"
	"cify.dev/pkg/cify/internal/domain"
	m "cify.dev/pkg/cify/internal/model"
)

const curvesLongDescription = `Tabulate distance falloff curves for audio attenuation.

Each curve maps a distance to a factor between 1 (at or below --min) and 0
(at or beyond --max):

  linear          falls in a straight line between min and max
  inverse-square  1/v^2 with v running from 1 at min to 16 at max
  linear-square   the linear factor squared`

var (
	minDistanceFlag float64
	maxDistanceFlag float64
	fromFlag        float64
	toFlag          float64
	samplesFlag     int
	formatFlag      string
)

// curvesCmd represents the curves command.
var curvesCmd = newCurvesCmd()

func newCurvesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Tabulate distance falloff curves",
		Long:  curvesLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
			if err != nil {
				return err
			}

			r := m.DistanceRange{
				Min: viper.GetFloat64(minDistanceConfigKey),
				Max: viper.GetFloat64(maxDistanceConfigKey),
			}

			samples, err := domain.SampleCurves(r, viper.GetFloat64(fromConfigKey), viper.GetFloat64(toConfigKey), viper.GetInt(samplesConfigKey))
			if err != nil {
				return err
			}

			return newUI(cmd).DisplayCurves(cmd.Context(), r, samples, controller.WithFormat(format))
		},
	}

	configureCurvesFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(curvesCmd)
}

func configureCurvesFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&minDistanceFlag, minDistanceFlagName, defaultMinDistance, "distance where attenuation starts")
	bindFlagToConfig(cmd.Flags().Lookup(minDistanceFlagName), minDistanceConfigKey)

	cmd.Flags().Float64Var(&maxDistanceFlag, maxDistanceFlagName, defaultMaxDistance, "distance where the factor reaches zero")
	bindFlagToConfig(cmd.Flags().Lookup(maxDistanceFlagName), maxDistanceConfigKey)

	cmd.Flags().Float64Var(&fromFlag, fromFlagName, defaultFrom, "first sampled distance")
	bindFlagToConfig(cmd.Flags().Lookup(fromFlagName), fromConfigKey)

	cmd.Flags().Float64Var(&toFlag, toFlagName, defaultTo, "last sampled distance")
	bindFlagToConfig(cmd.Flags().Lookup(toFlagName), toConfigKey)

	cmd.Flags().IntVarP(&samplesFlag, samplesFlagName, "n", defaultSamples, "number of sampled distances")
	bindFlagToConfig(cmd.Flags().Lookup(samplesFlagName), samplesConfigKey)

	cmd.Flags().StringVarP(&formatFlag, formatFlagName, "f", defaultFormat, "output format (table or yaml)")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)
}
