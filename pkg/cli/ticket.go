// Package cli pkg/cli/ticket.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/ticket"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage incident tickets for SLE remediation runs",
	}

	cmd.AddCommand(
		newTicketCreateCmd(),
		newTicketUpdateCmd(),
		newTicketCloseCmd(),
	)

	return cmd
}

func ticketClient() (*ticket.Client, error) {
	cfg, err := ticket.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("ticketing configuration: %w", err)
	}

	return ticket.NewClient(cfg)
}

func newTicketCreateCmd() *cobra.Command {
	var (
		apID        string
		sleType     string
		severity    string
		description string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open an incident ticket for a detected SLE failure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := ticketClient()
			if err != nil {
				return err
			}

			created, err := client.Create(cmd.Context(), apID,
				models.SLEType(sleType), models.Severity(severity), description)
			if err != nil {
				return err
			}

			summary := map[string]interface{}{
				"ticket_id": created.ID,
				"subject":   created.Subject,
				"priority":  created.Priority,
				"status":    created.Status,
			}

			return writeReport(output, created, summary)
		},
	}

	cmd.Flags().StringVar(&apID, "ap-id", "", "access point ID")
	cmd.Flags().StringVar(&sleType, "sle", "", "SLE metric type")
	cmd.Flags().StringVar(&severity, "severity", string(models.SeverityMedium), "severity tier (critical, high, medium, low)")
	cmd.Flags().StringVar(&description, "description", "", "additional context for the ticket body")
	cmd.Flags().StringVar(&output, "output", "", "optional report output file")
	_ = cmd.MarkFlagRequired("ap-id")
	_ = cmd.MarkFlagRequired("sle")

	return cmd
}

func newTicketUpdateCmd() *cobra.Command {
	var (
		ticketID int64
		comment  string
		status   string
		priority string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Add a comment and optionally change ticket status or priority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := ticketClient()
			if err != nil {
				return err
			}

			updated, err := client.Update(cmd.Context(), ticketID, comment, status, priority)
			if err != nil {
				return err
			}

			summary := map[string]interface{}{
				"ticket_id": updated.ID,
				"status":    updated.Status,
				"priority":  updated.Priority,
			}

			return writeReport(output, updated, summary)
		},
	}

	cmd.Flags().Int64Var(&ticketID, "ticket-id", 0, "ticket ID")
	cmd.Flags().StringVar(&comment, "comment", "", "comment to add")
	cmd.Flags().StringVar(&status, "status", "", "new ticket status")
	cmd.Flags().StringVar(&priority, "priority", "", "new ticket priority")
	cmd.Flags().StringVar(&output, "output", "", "optional report output file")
	_ = cmd.MarkFlagRequired("ticket-id")
	_ = cmd.MarkFlagRequired("comment")

	return cmd
}

func newTicketCloseCmd() *cobra.Command {
	var (
		ticketID int64
		comment  string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Resolve a ticket with a final comment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := ticketClient()
			if err != nil {
				return err
			}

			closed, err := client.Close(cmd.Context(), ticketID, comment)
			if err != nil {
				return err
			}

			summary := map[string]interface{}{
				"ticket_id": closed.ID,
				"status":    closed.Status,
			}

			return writeReport(output, closed, summary)
		},
	}

	cmd.Flags().Int64Var(&ticketID, "ticket-id", 0, "ticket ID")
	cmd.Flags().StringVar(&comment, "comment", "", "final resolution comment")
	cmd.Flags().StringVar(&output, "output", "", "optional report output file")
	_ = cmd.MarkFlagRequired("ticket-id")

	return cmd
}
