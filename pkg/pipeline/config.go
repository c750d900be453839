package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"gopkg.in/yaml.v3"
)

// Config is the reactions pipeline file: rules, the actions they are bound
// to, and the action definitions.
type Config struct {
	Rules   []RuleEntry     `yaml:"rules"`
	Actions []action.Config `yaml:"actions"`
}

// RuleEntry is a rule definition plus the ids of the actions it runs, in
// execution order.
type RuleEntry struct {
	rule.Config `yaml:",inline"`
	Actions     []string `yaml:"actions,omitempty"`
}

// LoadConfig reads, env-expands and validates a pipeline file.
// ${VAR} and ${VAR:default} are expanded before parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for in-memory YAML.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(common.ExpandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every structural problem of the file at once: missing or
// duplicate ids, missing types, and bindings to undefined actions.
func (c *Config) Validate() error {
	var errs []error

	ruleIDs := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		switch {
		case r.ID == "":
			errs = append(errs, fmt.Errorf("rules[%d]: empty id", i))
		case ruleIDs[r.ID]:
			errs = append(errs, fmt.Errorf("rule %s: duplicate id", r.ID))
		}
		ruleIDs[r.ID] = true
		if r.Type == "" {
			errs = append(errs, fmt.Errorf("rule %s: empty type", r.ID))
		}
	}

	actionIDs := make(map[string]bool, len(c.Actions))
	for i, a := range c.Actions {
		switch {
		case a.ID == "":
			errs = append(errs, fmt.Errorf("actions[%d]: empty id", i))
		case actionIDs[a.ID]:
			errs = append(errs, fmt.Errorf("action %s: duplicate id", a.ID))
		}
		actionIDs[a.ID] = true
		if a.Type == "" {
			errs = append(errs, fmt.Errorf("action %s: empty type", a.ID))
		}
		if a.Retry != nil && a.Retry.MaxAttempts < 0 {
			errs = append(errs, fmt.Errorf("action %s: negative retry attempts", a.ID))
		}
	}

	for _, r := range c.Rules {
		for _, id := range r.Actions {
			if !actionIDs[id] {
				errs = append(errs, fmt.Errorf("rule %s: unknown action %s", r.ID, id))
			}
		}
	}

	return errors.Join(errs...)
}

// RuleConfigs returns the rule definitions without their bindings.
func (c *Config) RuleConfigs() []rule.Config {
	out := make([]rule.Config, len(c.Rules))
	for i, r := range c.Rules {
		out[i] = r.Config
	}
	return out
}

// Bindings maps each enabled rule to the actions it runs.
func (c *Config) Bindings() map[string][]string {
	out := make(map[string][]string, len(c.Rules))
	for _, r := range c.Rules {
		if r.Enabled && len(r.Actions) > 0 {
			out[r.ID] = r.Actions
		}
	}
	return out
}
