package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opshelpers/internal/facts"
)

var timezoneCmd = &cobra.Command{
	Use:   "tz-offset",
	Short: "Reports the local timezone UTC offset",
	Long:  `Reports the UTC offset of the local timezone in seconds and whole hours, honouring daylight saving time.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		offset := facts.LocalTimezoneOffset(time.Now())

		newLogger().WithField("in_seconds", offset.InSeconds).Debug("Local timezone offset")

		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), map[string]interface{}{
			"changed":    false,
			"in_seconds": offset.InSeconds,
			"in_hours":   offset.InHours,
		})
	},
}

func init() {
	rootCmd.AddCommand(timezoneCmd)
}
