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

// Package remediation pkg/remediation/executor.go
package remediation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wlanops/apmender/pkg/models"
)

// Executor performs remediation actions against the device cloud,
// gated by the guardrail evaluator unless forced.
//
// Each Execute call makes at most one externally observable mutating
// call and never retries it: reboot is not idempotent-safe to repeat
// blindly, so retry policy belongs to the caller.
type Executor struct {
	devices Rebooter
	guard   Guard
}

// NewExecutor creates an Executor.
func NewExecutor(devices Rebooter, guard Guard) *Executor {
	return &Executor{
		devices: devices,
		guard:   guard,
	}
}

// Execute runs one remediation attempt through the state machine
// pending -> {blocked | success | error | not_implemented}. Expected
// outcomes (blocked, not_implemented) are states on the attempt, not
// Go errors; only the attempt record is returned.
func (x *Executor) Execute(ctx context.Context, apID string, action Action, force bool) *models.RemediationAttempt {
	attempt := &models.RemediationAttempt{
		Timestamp: time.Now().UTC(),
		APID:      apID,
		Action:    string(action),
		Status:    models.RemediationPending,
	}

	log.Printf("Initiating %s for AP %s (force=%v)", action, apID, force)

	if force {
		// Guardrails deliberately skipped; this must be loud.
		log.Printf("WARNING: guardrail checks skipped for AP %s (force mode)", apID)
	} else {
		result := x.guard.Evaluate(ctx, apID)
		if !result.Passed {
			attempt.Status = models.RemediationBlocked
			attempt.Reason = result.Reason
			log.Printf("Remediation blocked by guardrails: %s", result.Reason)

			return attempt
		}
	}

	switch action {
	case ActionReboot:
		x.reboot(ctx, attempt)
	case ActionWLANReset, ActionRRMAdjustment:
		// Recognized but stubbed: distinct terminal state so callers
		// never treat it as a device-state change.
		attempt.Status = models.RemediationNotImplemented
		attempt.Message = fmt.Sprintf("%s functionality pending implementation", action)
		log.Printf("%s not yet implemented for AP %s", action, apID)
	default:
		attempt.Status = models.RemediationError
		attempt.Error = fmt.Sprintf("unknown remediation action: %s", action)
		log.Printf("Unknown remediation action %q for AP %s", action, apID)
	}

	return attempt
}

func (x *Executor) reboot(ctx context.Context, attempt *models.RemediationAttempt) {
	log.Printf("Executing reboot for AP %s", attempt.APID)

	resp, err := x.devices.RebootAP(ctx, attempt.APID)
	if err != nil {
		attempt.Status = models.RemediationError
		attempt.Error = err.Error()
		log.Printf("Reboot failed for AP %s: %v", attempt.APID, err)

		return
	}

	attempt.Status = models.RemediationSuccess
	attempt.Response = resp
	attempt.Message = fmt.Sprintf("Reboot command issued successfully for AP %s", attempt.APID)

	log.Printf("Reboot completed successfully for AP %s", attempt.APID)
}
