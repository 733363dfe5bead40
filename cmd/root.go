package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opshelpers/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "opshelpers",
	Short: "Opshelpers - helpers for infrastructure playbooks",
	Long: `Opshelpers generates bucket-scoped IAM policies, reports host facts
and converts data for configuration templates.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.DisplayBanner(cmd.ErrOrStderr())
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("OPSHELPERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile")
	rootCmd.PersistentFlags().StringP("region", "r", "us-east-1", "AWS region")
	rootCmd.PersistentFlags().StringP("output", "o", formatJSON, "Output format (json, yaml)")

	flags := rootCmd.PersistentFlags()
	bindFlags(flags.Lookup("debug"), flags.Lookup("profile"), flags.Lookup("region"), flags.Lookup("output"))
}

// newLogger builds the logger shared by a command run. Logs always go to stderr.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if viper.GetBool("debug") {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
