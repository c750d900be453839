package pipeline

import (
	"errors"
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/rule"
)

// ValidateWiring checks the built registries against the file they came
// from. Every enabled rule and action must have an instance, and an
// enabled rule may only be bound to enabled actions; otherwise a trigger
// would hit a missing action at press time.
func ValidateWiring(rules *rule.Registry, actions *action.Registry, cfg *Config) error {
	var errs []error

	enabledActions := make(map[string]bool, len(cfg.Actions))
	for _, ac := range cfg.Actions {
		if !ac.Enabled {
			continue
		}
		enabledActions[ac.ID] = true
		if actions.Get(ac.ID) == nil {
			errs = append(errs, fmt.Errorf("action %s (type %s) is enabled but not registered", ac.ID, ac.Type))
		}
	}

	for _, rc := range cfg.Rules {
		if !rc.Enabled {
			continue
		}
		if rules.Get(rc.ID) == nil {
			errs = append(errs, fmt.Errorf("rule %s (type %s) is enabled but not registered", rc.ID, rc.Type))
		}
		for _, id := range rc.Actions {
			if !enabledActions[id] {
				errs = append(errs, fmt.Errorf("rule %s is bound to disabled action %s", rc.ID, id))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("pipeline wiring: %w", err)
	}
	return nil
}
