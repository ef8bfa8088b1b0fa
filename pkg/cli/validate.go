// Package cli pkg/cli/validate.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		apID      string
		sleType   string
		threshold float64
		output    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate SLE recovery after remediation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, client, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := client.ValidateCredentials(ctx); err != nil {
				return err
			}

			settings := validation.SettingsFromRules(rules.Validation)
			if threshold > 0 {
				settings.Threshold = threshold
			}

			loop := validation.NewLoop(client, settings)
			result := loop.Validate(ctx, apID, models.SLEType(sleType))

			summary := map[string]interface{}{
				"ap_id":       apID,
				"sle":         sleType,
				"status":      result.Status,
				"final_score": result.FinalScore,
				"attempts":    len(result.Attempts),
			}

			if err := writeReport(output, result, summary); err != nil {
				return err
			}

			if result.Status != models.ValidationRestored {
				return errRunFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&apID, "ap-id", "", "access point ID")
	cmd.Flags().StringVar(&sleType, "sle", "", "SLE metric type")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum acceptable score (default from rules)")
	cmd.Flags().StringVar(&output, "output", "validation.json", "report output file")
	_ = cmd.MarkFlagRequired("ap-id")
	_ = cmd.MarkFlagRequired("sle")

	return cmd
}
