package rule

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
)

// Cooldown scopes.
const (
	ScopePlayer = "per_user"
	ScopeGlobal = "global"
)

// Config is one entry of the "rules" list in the pipeline YAML.
type Config struct {
	ID         string        `yaml:"id" json:"id"`
	Type       string        `yaml:"type" json:"type"`
	Enabled    bool          `yaml:"enabled" json:"enabled"`
	Priority   int           `yaml:"priority,omitempty" json:"priority,omitempty"`
	Cooldown   *Cooldown     `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
	Parameters common.Params `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Cooldown suppresses repeat triggers of a rule for Duration after it fired,
// measured on the signal clock. Scope defaults to per_user.
type Cooldown struct {
	Duration time.Duration `yaml:"duration" json:"duration"`
	Scope    string        `yaml:"scope,omitempty" json:"scope,omitempty"`
}

func (c *Cooldown) validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("cooldown duration must be positive, got %s", c.Duration)
	}
	switch c.Scope {
	case "", ScopePlayer, ScopeGlobal:
		return nil
	default:
		return fmt.Errorf("unknown cooldown scope %q", c.Scope)
	}
}

// SignalTypes reads the optional "signal_types" parameter every builtin
// rule accepts.
func (c Config) SignalTypes() []string {
	return c.Parameters.Strings("signal_types")
}
