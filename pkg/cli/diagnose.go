// Package cli pkg/cli/diagnose.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/diagnostics"
	"github.com/wlanops/apmender/pkg/models"
)

func newDiagnoseCmd() *cobra.Command {
	var (
		apID    string
		sleType string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Collect AP and SLE diagnostics for one access point",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, client, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := client.ValidateCredentials(ctx); err != nil {
				return err
			}

			collector := diagnostics.NewCollector(client, rules)
			report := collector.GenerateReport(ctx, apID, models.SLEType(sleType))

			summary := map[string]interface{}{
				"ap_id":              apID,
				"sle":                sleType,
				"ok":                 report.AP.OK,
				"remediation_needed": report.RemediationNeeded,
				"client_count":       report.AP.ClientCount,
				"issues":             len(report.SLE.Issues),
			}

			return writeReport(output, report, summary)
		},
	}

	cmd.Flags().StringVar(&apID, "ap-id", "", "access point ID")
	cmd.Flags().StringVar(&sleType, "sle", "", "SLE metric type")
	cmd.Flags().StringVar(&output, "output", "diagnostics.json", "report output file")
	_ = cmd.MarkFlagRequired("ap-id")
	_ = cmd.MarkFlagRequired("sle")

	return cmd
}
