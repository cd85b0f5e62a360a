package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cify.dev/pkg/cify/internal/domain"
	m "cify.dev/pkg/cify/internal/model"
)

const embedLongDescription = `Convert a binary file into a C byte array declaration.

The array is named g_<name>, where <name> is the file name without its
extension, lower-cased, with hyphens and other non-identifier characters
replaced by underscores. A trailing 0x00 sentinel is appended, so the real
content length is sizeof(array) - 1.

Without a destination (or with "-") the source is written to stdout.
Otherwise missing parent directories are created and the destination is
overwritten. If the conversion fails after the destination was created, the
partial file is removed unless --keep-partial is set.

Output layout:

  #include <stdint.h>

  const uint8_t g_<name>[] = {0x01, 0xFF, 0x00};`

var keepPartialFlag bool

// embedCmd represents the embed command.
var embedCmd = newEmbedCmd()

func newEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed <source-file> [destination-file]",
		Short: "Convert a binary file into a C byte array",
		Long:  embedLongDescription,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			embedArgs := domain.EmbedArgs{
				Source:      m.Path(args[0]),
				Output:      cmd.OutOrStdout(),
				KeepPartial: viper.GetBool(keepPartialConfigKey),
			}

			if len(args) > 1 {
				embedArgs.Destination = m.Path(args[1])
			}

			fragment, err := embedder.Embed(cmd.Context(), embedArgs)
			if err != nil {
				return err
			}

			newUI(cmd).DisplayFragment(cmd.Context(), fragment)

			return nil
		},
	}

	configureEmbedFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func configureEmbedFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&keepPartialFlag, keepPartialFlagName, defaultKeepPartial, "leave a partially written destination in place on failure")
	bindFlagToConfig(cmd.Flags().Lookup(keepPartialFlagName), keepPartialConfigKey)
}
