// Package cli pkg/cli/run.go
package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/audit"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/remediation"
	"github.com/wlanops/apmender/pkg/ticket"
	"github.com/wlanops/apmender/pkg/workflow"
)

func newRunCmd() *cobra.Command {
	var (
		apID    string
		sleType string
		action  string
		force   bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full detect-remediate-validate workflow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, client, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := client.ValidateCredentials(ctx); err != nil {
				return err
			}

			wf := workflow.New(client, rules, nil)
			outcome := wf.Run(ctx, apID, models.SLEType(sleType), workflow.Options{
				Force:  force,
				Action: remediation.Action(action),
			})

			audit.NewSink(audit.ConfigFromEnv()).RecordWorkflow(ctx, outcome)
			fileTicket(ctx, outcome)

			printStatus(outcome.Status)

			summary := map[string]interface{}{
				"run_id":             outcome.RunID,
				"ap_id":              outcome.APID,
				"sle":                outcome.SLEType,
				"status":             outcome.Status,
				"severity":           outcome.Severity,
				"remediation_needed": outcome.RemediationNeeded,
				"recommendations":    outcome.Recommendations,
			}

			if err := writeReport(output, outcome, summary); err != nil {
				return err
			}

			if !outcome.Succeeded() {
				return errRunFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&apID, "ap-id", "", "access point ID")
	cmd.Flags().StringVar(&sleType, "sle", "", "SLE metric type")
	cmd.Flags().StringVar(&action, "action", "", "override the selected remediation action")
	cmd.Flags().BoolVar(&force, "force", false, "skip guardrail checks")
	cmd.Flags().StringVar(&output, "output", "workflow.json", "report output file")
	_ = cmd.MarkFlagRequired("ap-id")
	_ = cmd.MarkFlagRequired("sle")

	return cmd
}

// fileTicket opens an incident ticket for runs that confirmed a
// degradation. Ticketing is best-effort like the audit sink: missing
// configuration or a failed create is logged, never fatal.
func fileTicket(ctx context.Context, outcome *models.WorkflowOutcome) {
	if !outcome.RemediationNeeded {
		return
	}

	cfg, err := ticket.ConfigFromEnv()
	if err != nil {
		log.Printf("Ticketing not configured, skipping ticket for run %s: %v", outcome.RunID, err)
		return
	}

	client, err := ticket.NewClient(cfg)
	if err != nil {
		log.Printf("Failed to build ticketing client: %v", err)
		return
	}

	description := fmt.Sprintf("Workflow %s finished with status %s (initial score %.2f).",
		outcome.RunID, outcome.Status, outcome.InitialScore)

	created, err := client.Create(ctx, outcome.APID, outcome.SLEType, outcome.Severity, description)
	if err != nil {
		log.Printf("Failed to create ticket for run %s: %v", outcome.RunID, err)
		return
	}

	log.Printf("Filed ticket #%d for run %s", created.ID, outcome.RunID)
}
