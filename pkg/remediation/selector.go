// Package remediation pkg/remediation/selector.go
package remediation

import (
	"log"
	"sort"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/models"
)

// Action identifies a remediation action.
type Action string

const (
	ActionReboot        Action = "reboot"
	ActionWLANReset     Action = "wlan_reset"
	ActionRRMAdjustment Action = "rrm_adjustment"
)

// DefaultAction applies when no strategy is configured for an SLE
// type. Absence of a strategy is expected, not an error.
const DefaultAction = ActionReboot

// SelectAction picks the remediation action for an SLE type. The
// configured step with the numerically lowest priority wins; ties keep
// their listed order (stable sort).
func SelectAction(sleType models.SLEType, strategies map[string][]config.StrategyStep) Action {
	steps, ok := strategies[string(sleType)]
	if !ok || len(steps) == 0 {
		log.Printf("No remediation strategy for SLE type %q, defaulting to %s", sleType, DefaultAction)
		return DefaultAction
	}

	ordered := make([]config.StrategyStep, len(steps))
	copy(ordered, steps)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	action := Action(ordered[0].Action)
	log.Printf("Selected remediation action %q for SLE type %q", action, sleType)

	return action
}
