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

// Package guardrail pkg/guardrail/interfaces.go
package guardrail

import (
	"context"
	"time"

	"github.com/wlanops/apmender/pkg/models"
)

// StatsProvider is the slice of the device client the evaluator needs.
type StatsProvider interface {
	GetAPStats(ctx context.Context, apID string) (*models.APStats, error)
}

// Clock abstracts wall time so business-hours checks are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
