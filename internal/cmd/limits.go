package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/fixtures"
	"github.com/limitlens/limitlens/internal/output"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Print the sample limit datasets",
	Long: `Print the deterministic limit datasets used by tests.

Without --api the three-limit dataset is shown; --api adds the API-reported
values and the fourth limit.`,
	Args: cobra.NoArgs,
	RunE: runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)

	limitsCmd.Flags().Bool("api", false, "Show the dataset with API-reported limit values")
	limitsCmd.Flags().StringP("output", "o", "table", "Output format: table, json, yaml, markdown")
}

func runLimits(cmd *cobra.Command, args []string) error {
	withAPI, err := cmd.Flags().GetBool("api")
	if err != nil {
		return err
	}
	formatName, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return apperrors.WrapInvalidInput(cmd.Context(), err, "invalid output format")
	}

	dataset := fixtures.SampleLimits()
	if withAPI {
		dataset = fixtures.SampleLimitsAPI()
	}

	rendered, err := output.NewFormatter(format).FormatLimits(dataset)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
