package rule

import (
	"context"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/signal"
)

// Rule decides whether an effect signal should start a reaction.
type Rule interface {
	// ID is the configured rule id; actions are bound to it.
	ID() string

	// SignalTypes lists the tag categories the rule listens to.
	// Nil means every category.
	SignalTypes() []string

	// Evaluate returns a trigger when the signal matches, nil otherwise.
	// An error means the rule could not decide, not that it did not match.
	Evaluate(ctx context.Context, sig signal.Signal) (*Trigger, error)

	Config() Config
}

// Trigger is a matched rule, carrying the effect that caused it.
type Trigger struct {
	RuleID     string
	UserID     string
	SignalType string
	Tag        string
	Key        string
	At         time.Time // engine time of the outcome, not wall clock
	Reason     string
	Priority   int // higher runs first
	Metadata   map[string]interface{}
}

// NewTrigger builds a trigger for sig on behalf of the rule with the given
// id and priority.
func NewTrigger(ruleID string, priority int, sig signal.Signal, reason string) *Trigger {
	key, _ := sig.Metadata()[signal.MetadataKey].(string)
	return &Trigger{
		RuleID:     ruleID,
		UserID:     sig.UserID(),
		SignalType: sig.Type(),
		Tag:        signal.Tag(sig),
		Key:        key,
		At:         sig.Timestamp(),
		Reason:     reason,
		Priority:   priority,
		Metadata:   make(map[string]interface{}),
	}
}

// With sets a metadata entry and returns the trigger.
func (t *Trigger) With(key string, value interface{}) *Trigger {
	t.Metadata[key] = value
	return t
}
