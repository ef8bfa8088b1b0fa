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

// Package remediation pkg/remediation/interfaces.go
package remediation

import (
	"context"

	"github.com/wlanops/apmender/pkg/guardrail"
	"github.com/wlanops/apmender/pkg/mist"
)

// Guard gates disruptive actions. Satisfied by guardrail.Evaluator.
type Guard interface {
	Evaluate(ctx context.Context, apID string) guardrail.Result
}

// Rebooter is the slice of the device client the executor needs.
type Rebooter interface {
	RebootAP(ctx context.Context, apID string) (*mist.RebootResponse, error)
}
