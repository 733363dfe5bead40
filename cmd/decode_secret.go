package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opshelpers/internal/filters"
	"opshelpers/internal/kube"
)

var decodeSecretCmd = &cobra.Command{
	Use:   "decode-secret [FILE]",
	Short: "Decodes the base64 data of a Kubernetes secret",
	Long: `Decodes the data of a Kubernetes secret into a flat mapping of text values.
The secret is read as YAML or JSON from FILE (or stdin), or fetched from the cluster
when --name is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		var decoded map[string]string

		if name := viper.GetString("name"); name != "" {
			if len(args) > 0 {
				return errors.New("FILE and --name are mutually exclusive")
			}

			client, err := kube.New(viper.GetString("kubeconfig"), logger)
			if err != nil {
				return err
			}

			secret, err := client.GetSecret(cmd.Context(), viper.GetString("namespace"), name)
			if err != nil {
				return err
			}

			decoded, err = filters.DecodeSecret(secret)
			if err != nil {
				return err
			}
		} else {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			input, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			secret, ok := input.(map[string]interface{})
			if !ok {
				return errors.Errorf("secret must be a mapping, got %T", input)
			}

			decoded, err = filters.DecodeSecretData(secret)
			if err != nil {
				return err
			}
		}

		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), decoded)
	},
}

func init() {
	rootCmd.AddCommand(decodeSecretCmd)

	decodeSecretCmd.Flags().String("name", "", "Name of the secret to fetch from the cluster")
	decodeSecretCmd.Flags().StringP("namespace", "n", "default", "Namespace of the secret")
	decodeSecretCmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file")
	bindFlags(decodeSecretCmd.Flags().Lookup("name"), decodeSecretCmd.Flags().Lookup("namespace"), decodeSecretCmd.Flags().Lookup("kubeconfig"))
}
