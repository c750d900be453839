package rule

import (
	"context"
	"sort"

	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Engine runs a signal through the registered rules.
type Engine struct {
	registry  *Registry
	cooldowns *cooldowns
}

// NewEngine creates an engine over registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry:  registry,
		cooldowns: newCooldowns(),
	}
}

// Evaluate asks every enabled rule listening to the signal's category, in
// rule-ID order, and returns the triggers ordered by descending priority.
// Equal priorities keep rule-ID order. A rule that errors is logged and
// skipped; a rule inside its cooldown window produces nothing.
func (e *Engine) Evaluate(ctx context.Context, sig signal.Signal) ([]*Trigger, error) {
	if sig == nil {
		return nil, nil
	}

	rules := e.registry.ForSignal(sig.Type())
	if len(rules) == 0 {
		return nil, nil
	}

	log := logrus.WithFields(logrus.Fields{
		"signal_type": sig.Type(),
		"user_id":     sig.UserID(),
		"tag":         signal.Tag(sig),
	})

	var triggers []*Trigger
	for _, r := range rules {
		if err := ctx.Err(); err != nil {
			return triggers, err
		}

		trigger, err := r.Evaluate(ctx, sig)
		if err != nil {
			log.WithField("rule_id", r.ID()).Errorf("rule evaluation failed: %v", err)
			continue
		}
		if trigger == nil {
			continue
		}
		if !e.cooldowns.admit(r.Config().Cooldown, r.ID(), sig.UserID(), sig.Timestamp()) {
			log.WithField("rule_id", r.ID()).Debug("rule matched during cooldown")
			continue
		}

		log.WithField("rule_id", r.ID()).Debugf("rule triggered: %s", trigger.Reason)
		triggers = append(triggers, trigger)
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].Priority > triggers[j].Priority
	})
	return triggers, nil
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *Registry {
	return e.registry
}
