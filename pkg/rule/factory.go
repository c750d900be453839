package rule

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory builds a rule from its YAML entry.
type Factory func(cfg Config) (Rule, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterType makes a rule type available to Build. Registering the same
// type again replaces the factory.
func RegisterType(ruleType string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[ruleType] = factory
}

// Types lists the registered rule types.
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

// Build creates the rule described by cfg. Disabled entries yield (nil, nil).
func Build(cfg Config) (Rule, error) {
	if !cfg.Enabled {
		logrus.WithField("rule_id", cfg.ID).Info("rule disabled, skipping")
		return nil, nil
	}
	if cfg.Cooldown != nil {
		if err := cfg.Cooldown.validate(); err != nil {
			return nil, fmt.Errorf("rule %s: %w", cfg.ID, err)
		}
	}

	factoriesMu.RLock()
	factory, ok := factories[cfg.Type]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("rule %s: unknown type %q (known: %v)", cfg.ID, cfg.Type, Types())
	}

	r, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", cfg.ID, err)
	}
	return r, nil
}

// Load builds every entry and registers the enabled ones. All build
// failures are reported together and nothing is registered when any occur.
func Load(registry *Registry, configs []Config) error {
	var (
		rules []Rule
		errs  []error
	)
	for _, cfg := range configs {
		r, err := Build(cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if r != nil {
			rules = append(rules, r)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"rule_id":  r.ID(),
			"type":     r.Config().Type,
			"priority": r.Config().Priority,
		}).Info("rule registered")
	}
	return nil
}
