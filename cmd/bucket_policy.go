package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"opshelpers/internal/aws"
	"opshelpers/internal/policy"
)

var bucketPolicyCmd = &cobra.Command{
	Use:   "bucket-policy BUCKET...",
	Short: "Generates IAM policies restricted to S3 buckets",
	Long: `Generates one IAM policy document per bucket. Each document allows listing
the bucket, allows object actions inside it and denies every S3 action anywhere else.
Read-write policies allow "s3:*" on objects; read-only ones allow "s3:Get*" and "s3:List*".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := policy.NewGenerator(newLogger()).Generate(args, policyOptions())
		if err != nil {
			return err
		}

		format := viper.GetString("output")
		if format == formatText {
			policy.DisplayDocuments(cmd.OutOrStdout(), args, docs)
			return nil
		}

		return writeOutput(cmd.OutOrStdout(), format, docs)
	},
}

var checkPolicyCmd = &cobra.Command{
	Use:   "check BUCKET",
	Short: "Checks whether a bucket policy allows an action on a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := viper.GetString("action")
		resource := viper.GetString("resource")
		if action == "" || resource == "" {
			return &policy.ConfigurationError{Field: "check", Reason: "--action and --resource are required"}
		}

		docs, err := policy.NewGenerator(newLogger()).Generate(args, policyOptions())
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), map[string]interface{}{
			"bucket":   args[0],
			"mode":     policyOptions().Mode().String(),
			"action":   action,
			"resource": resource,
			"allowed":  docs[0].Allows(action, resource),
		})
	},
}

var applyPolicyCmd = &cobra.Command{
	Use:   "apply BUCKET",
	Short: "Creates or updates a customer managed IAM policy for a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		opts := policyOptions()

		docs, err := policy.NewGenerator(logger).Generate(args, opts)
		if err != nil {
			return err
		}

		name := viper.GetString("policy-name")
		if name == "" {
			name = fmt.Sprintf("%s-%s", args[0], opts.Mode())
		}

		client, err := aws.NewClient(cmd.Context(), viper.GetString("profile"), viper.GetString("region"))
		if err != nil {
			return err
		}

		result, err := client.EnsureBucketPolicy(cmd.Context(), name, docs[0], logger)
		if err != nil {
			return err
		}

		aws.DisplayApplyResult(cmd.ErrOrStderr(), name, result)

		return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), result)
	},
}

func policyOptions() policy.Options {
	return policy.Options{
		ReadOnly: viper.GetBool("readonly"),
	}
}

func init() {
	rootCmd.AddCommand(bucketPolicyCmd)
	bucketPolicyCmd.AddCommand(checkPolicyCmd)
	bucketPolicyCmd.AddCommand(applyPolicyCmd)

	bucketPolicyCmd.PersistentFlags().Bool("readonly", false, "Allow only read actions (s3:Get*, s3:List*) on bucket objects")
	bindFlags(bucketPolicyCmd.PersistentFlags().Lookup("readonly"))

	checkPolicyCmd.Flags().String("action", "", "Action to check, e.g. s3:GetObject")
	checkPolicyCmd.Flags().String("resource", "", "Resource ARN to check, e.g. arn:aws:s3:::bucket/key")
	bindFlags(checkPolicyCmd.Flags().Lookup("action"), checkPolicyCmd.Flags().Lookup("resource"))

	applyPolicyCmd.Flags().String("policy-name", "", "IAM policy name (default BUCKET-read-write or BUCKET-read-only)")
	bindFlags(applyPolicyCmd.Flags().Lookup("policy-name"))
}
