package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory builds an action from its YAML entry.
type Factory func(cfg Config) (Action, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterType makes an action type available to Build. Registering the
// same type again replaces the factory, which lets the host rebind
// dependencies.
func RegisterType(actionType string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[actionType] = factory
}

// Types lists the registered action types.
func Types() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Build creates the action described by cfg. Disabled entries yield (nil, nil).
func Build(cfg Config) (Action, error) {
	if !cfg.Enabled {
		logrus.WithField("action_id", cfg.ID).Info("action disabled, skipping")
		return nil, nil
	}
	if cfg.Retry != nil {
		if err := cfg.Retry.validate(); err != nil {
			return nil, fmt.Errorf("action %s: %w", cfg.ID, err)
		}
	}

	factoriesMu.RLock()
	factory, ok := factories[cfg.Type]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("action %s: unknown type %q (known: %v)", cfg.ID, cfg.Type, Types())
	}

	a, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", cfg.ID, err)
	}
	return a, nil
}

// Load builds every entry and registers the enabled ones. Build failures
// are reported together and nothing is registered when any occur.
func Load(registry *Registry, configs []Config) error {
	var (
		actions []Action
		errs    []error
	)
	for _, cfg := range configs {
		a, err := Build(cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if a != nil {
			actions = append(actions, a)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, a := range actions {
		if err := registry.Register(a); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"action_id": a.ID(),
			"type":      a.Config().Type,
			"attempts":  a.Config().Retry.Attempts(),
		}).Info("action registered")
	}
	return nil
}
