package action

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/cenkalti/backoff/v4"
)

// Backoff strategies.
const (
	BackoffConstant    = "constant"
	BackoffExponential = "exponential"
)

// Config is one entry of the "actions" list in the pipeline YAML.
type Config struct {
	ID         string        `yaml:"id" json:"id"`
	Type       string        `yaml:"type" json:"type"`
	Enabled    bool          `yaml:"enabled" json:"enabled"`
	Retry      *Retry        `yaml:"retry,omitempty" json:"retry,omitempty"`
	Parameters common.Params `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Retry is the per-action retry policy. MaxAttempts counts the first try.
type Retry struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
	Backoff     string        `yaml:"backoff,omitempty" json:"backoff,omitempty"`
}

// Attempts returns how many times an action with this policy may run.
func (r *Retry) Attempts() int {
	if r == nil || r.MaxAttempts < 1 {
		return 1
	}
	return r.MaxAttempts
}

func (r *Retry) validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("retry max_attempts must not be negative, got %d", r.MaxAttempts)
	}
	if r.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", r.Delay)
	}
	switch r.Backoff {
	case "", BackoffConstant, BackoffExponential:
		return nil
	default:
		return fmt.Errorf("unknown retry backoff %q", r.Backoff)
	}
}

// policy builds the backoff schedule between attempts, bounded by ctx.
func (r *Retry) policy(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if r.Backoff == BackoffExponential {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = r.Delay
		exp.MaxElapsedTime = 0
		b = exp
	} else {
		b = backoff.NewConstantBackOff(r.Delay)
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.Attempts()-1)), ctx)
}
