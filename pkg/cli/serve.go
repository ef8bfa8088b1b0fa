// Package cli pkg/cli/serve.go
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/api"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/workflow"
)

// workflowRunner adapts workflow.Workflow to the api.Runner contract.
type workflowRunner struct {
	wf *workflow.Workflow
}

func (r *workflowRunner) Run(ctx context.Context, apID string, sleType models.SLEType, force bool) *models.WorkflowOutcome {
	return r.wf.Run(ctx, apID, sleType, workflow.Options{Force: force})
}

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workflow HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, client, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := client.ValidateCredentials(ctx); err != nil {
				return err
			}

			server := api.NewServer(&workflowRunner{wf: workflow.New(client, rules, nil)})

			return server.Start(ctx, listenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":8080", "listen address")

	return cmd
}
