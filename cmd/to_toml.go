package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"opshelpers/internal/filters"
)

var toTOMLCmd = &cobra.Command{
	Use:   "to-toml [FILE]",
	Short: "Converts a YAML or JSON mapping to TOML",
	Long:  `Reads a YAML or JSON mapping from FILE (or stdin) and writes the equivalent TOML document.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}

		input, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		out, err := filters.ToTOML(input)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(toTOMLCmd)
}
