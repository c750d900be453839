package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/metrics"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Manager turns engine outcomes into reactions:
// Outcome → Signals → Rules → Actions.
type Manager struct {
	processor *signal.Processor
	engine    *rule.Engine
	executor  *action.Executor
	bindings  map[string][]string // rule id → action ids
}

// NewManager creates a manager. bindings maps rule ids to the action ids
// they run; a rule without bindings triggers nothing.
func NewManager(processor *signal.Processor, engine *rule.Engine, executor *action.Executor, bindings map[string][]string) *Manager {
	if bindings == nil {
		bindings = make(map[string][]string)
	}
	return &Manager{
		processor: processor,
		engine:    engine,
		executor:  executor,
		bindings:  bindings,
	}
}

// ProcessOutcome runs every effect of an outcome through the rules, in
// emission order, and executes the actions of the rules that trigger.
// Action failures are logged and counted but do not fail the call; a rule
// engine error stops processing of the outcome.
func (m *Manager) ProcessOutcome(ctx context.Context, userID string, outcome progression.Outcome, session signal.SessionHandle, now time.Time) error {
	signals := m.processor.FromOutcome(userID, outcome, session, now)
	for _, sig := range signals {
		if err := m.react(ctx, sig); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) react(ctx context.Context, sig signal.Signal) error {
	triggers, err := m.engine.Evaluate(ctx, sig)
	if err != nil {
		return fmt.Errorf("rule evaluation for %s: %w", signal.Tag(sig), err)
	}

	for _, trigger := range triggers {
		metrics.ObserveTrigger(trigger.RuleID)

		actionIDs := m.bindings[trigger.RuleID]
		if len(actionIDs) == 0 {
			continue
		}

		results, err := m.executor.Run(ctx, actionIDs, trigger, sig.Context())
		for _, r := range results {
			metrics.ObserveAction(r.ActionID, r.OK(), r.Reverted)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"rule_id": trigger.RuleID,
				"user_id": trigger.UserID,
				"tag":     trigger.Tag,
			}).Warnf("reaction stopped after %d of %d actions: %v", len(results), len(actionIDs), err)
		}
	}
	return nil
}
