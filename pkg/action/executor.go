package action

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Executor runs the actions bound to a trigger.
type Executor struct {
	registry *Registry
}

// NewExecutor creates an executor over registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Run executes actionIDs in order. The first failure stops the chain; the
// actions that already completed are reverted newest first when they
// implement Reverter. The returned results cover every action that ran, and
// the error is the failure that stopped the chain.
func (e *Executor) Run(ctx context.Context, actionIDs []string, trigger *rule.Trigger, playerCtx *signal.PlayerContext) ([]Result, error) {
	results := make([]Result, 0, len(actionIDs))
	log := logrus.WithFields(logrus.Fields{
		"rule_id": trigger.RuleID,
		"user_id": trigger.UserID,
		"tag":     trigger.Tag,
	})

	for _, id := range actionIDs {
		a := e.registry.Get(id)
		if a == nil {
			err := fmt.Errorf("%w: %s", ErrNotFound, id)
			results = append(results, Result{ActionID: id, Err: err})
			e.revert(ctx, results, trigger, playerCtx)
			return results, err
		}

		attempts, err := e.attempt(ctx, a, trigger, playerCtx)
		results = append(results, Result{ActionID: id, Attempts: attempts, Err: err})
		if err != nil {
			log.WithField("action_id", id).Errorf("action failed after %d attempt(s): %v", attempts, err)
			e.revert(ctx, results, trigger, playerCtx)
			return results, err
		}
		log.WithField("action_id", id).Debug("action completed")
	}

	return results, nil
}

// attempt runs a under its retry policy. Permanent errors end the loop early.
func (e *Executor) attempt(ctx context.Context, a Action, trigger *rule.Trigger, playerCtx *signal.PlayerContext) (int, error) {
	retry := a.Config().Retry
	if retry.Attempts() == 1 {
		return 1, a.Execute(ctx, trigger, playerCtx)
	}

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		err := a.Execute(ctx, trigger, playerCtx)
		if err != nil && permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, retry.policy(ctx))

	if err != nil && attempts >= retry.Attempts() {
		return attempts, fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
	}
	return attempts, err
}

// revert undoes the successful results, newest first, and marks them.
func (e *Executor) revert(ctx context.Context, results []Result, trigger *rule.Trigger, playerCtx *signal.PlayerContext) {
	for i := len(results) - 1; i >= 0; i-- {
		if !results[i].OK() {
			continue
		}
		r, ok := e.registry.Get(results[i].ActionID).(Reverter)
		if !ok {
			continue
		}
		if err := r.Revert(ctx, trigger, playerCtx); err != nil {
			logrus.WithField("action_id", results[i].ActionID).Errorf("revert failed: %v", err)
			continue
		}
		results[i].Reverted = true
	}
}
