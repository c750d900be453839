package action

import (
	"context"

	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
)

// Action is a reaction to a rule trigger.
type Action interface {
	ID() string

	// Execute performs the reaction. playerCtx may be nil when the trigger
	// did not come from a live session.
	Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error

	Config() Config
}

// Reverter is implemented by actions whose effect can be undone. When a
// later action bound to the same trigger fails, the executor reverts the
// completed ones in reverse order.
type Reverter interface {
	Revert(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error
}

// Result records one action run.
type Result struct {
	ActionID string
	Attempts int
	Reverted bool
	Err      error
}

// OK reports whether the action succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
