package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
)

// DefaultStreakThreshold applies when "threshold" is not configured.
const DefaultStreakThreshold = 10

// StreakRule fires on an effect while the press streak is at least "threshold".
type StreakRule struct {
	base
	threshold int
}

// NewStreakRule creates a streak rule.
func NewStreakRule(cfg rule.Config) (*StreakRule, error) {
	threshold := cfg.Parameters.Int("threshold", DefaultStreakThreshold)
	if threshold <= 0 {
		return nil, fmt.Errorf("streak needs a positive threshold, got %d", threshold)
	}
	return &StreakRule{base: newBase(cfg), threshold: threshold}, nil
}

// Evaluate reads the streak from the signal's player state.
func (r *StreakRule) Evaluate(ctx context.Context, sig signal.Signal) (*rule.Trigger, error) {
	state, err := stateOf(sig)
	if err != nil {
		return nil, err
	}
	if state.Streak < r.threshold {
		return nil, nil
	}

	reason := fmt.Sprintf("streak %d >= %d", state.Streak, r.threshold)
	return rule.NewTrigger(r.ID(), r.cfg.Priority, sig, reason).With("streak", state.Streak), nil
}
