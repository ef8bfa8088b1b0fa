// Package cli pkg/cli/remediate.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/guardrail"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/remediation"
)

func newRemediateCmd() *cobra.Command {
	var (
		apID    string
		sleType string
		action  string
		force   bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Execute a remediation action against one access point",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, client, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := client.ValidateCredentials(ctx); err != nil {
				return err
			}

			selected := remediation.Action(action)
			if selected == "" {
				if sleType != "" {
					selected = remediation.SelectAction(models.SLEType(sleType), rules.RemediationStrategies)
				} else {
					selected = remediation.DefaultAction
				}
			}

			guard := guardrail.NewEvaluator(rules.Guardrails, client, nil)
			executor := remediation.NewExecutor(client, guard)
			attempt := executor.Execute(ctx, apID, selected, force)

			summary := map[string]interface{}{
				"ap_id":   apID,
				"action":  attempt.Action,
				"status":  attempt.Status,
				"message": attempt.Message,
			}

			if err := writeReport(output, attempt, summary); err != nil {
				return err
			}

			if attempt.Status == models.RemediationBlocked || attempt.Status == models.RemediationError {
				return errRunFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&apID, "ap-id", "", "access point ID")
	cmd.Flags().StringVar(&sleType, "sle", "", "SLE metric type used for action selection")
	cmd.Flags().StringVar(&action, "action", "", "remediation action (reboot, wlan_reset, rrm_adjustment)")
	cmd.Flags().BoolVar(&force, "force", false, "skip guardrail checks")
	cmd.Flags().StringVar(&output, "output", "remediation.json", "report output file")
	_ = cmd.MarkFlagRequired("ap-id")

	return cmd
}
