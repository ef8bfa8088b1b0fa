/*
 * Copyright 2025 The apmender Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cli wires the cobra command tree. Every command loads the
// rules file, builds the device client from the environment, prints a
// JSON summary, and exits non-zero when the outcome is anything but
// success.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/mist"
	"github.com/wlanops/apmender/pkg/models"
)

// errRunFailed marks outcomes that must produce a non-zero exit code
// without a second error message.
var errRunFailed = errors.New("run failed")

var (
	rulesPath string
	envFile   string
)

// NewRootCmd builds the apmender command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "apmender",
		Short:        "Automated SLE remediation for wireless access points",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// Optional .env for local runs; CI injects real env vars.
			if _, err := os.Stat(envFile); err == nil {
				if err := godotenv.Load(envFile); err != nil {
					log.Printf("Failed to load %s: %v", envFile, err)
				}
			}
		},
	}

	cmd.PersistentFlags().StringVar(&rulesPath, "rules", "rules/sle_rules.yaml", "path to the SLE rules file")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional env file with credentials")

	cmd.AddCommand(
		newDiagnoseCmd(),
		newRemediateCmd(),
		newValidateCmd(),
		newRunCmd(),
		newServeCmd(),
		newTicketCmd(),
	)

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			color.Red("Error: %v", err)
		}

		return 1
	}

	return 0
}

// setup loads rules and constructs the device client, validating
// credentials configuration before any workflow step.
func setup() (*config.Rules, *mist.Client, error) {
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading rules: %w", err)
	}

	cfg, err := mist.ConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("device cloud configuration: %w", err)
	}

	client, err := mist.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	return rules, client, nil
}

// writeReport saves a JSON report file when path is non-empty and
// prints the summary to stdout.
func writeReport(path string, report, summary interface{}) error {
	if path != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}

		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		log.Printf("Report saved to %s", path)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	fmt.Println(string(out))

	return nil
}

// printStatus renders a colored one-line status.
func printStatus(status models.WorkflowStatus) {
	switch status {
	case models.WorkflowSuccess:
		color.Green("Status: %s", status)
	case models.WorkflowBlocked, models.WorkflowNotImplemented:
		color.Yellow("Status: %s", status)
	default:
		color.Red("Status: %s", status)
	}
}
