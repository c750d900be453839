package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/metrics"
	"github.com/AccelByte/extend-button-story/pkg/pipeline"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// recordingRule listens to milestones and rare events and records the
// tags it saw.
type recordingRule struct {
	id    string
	match bool
	fail  bool
	seen  []string
}

func (m *recordingRule) ID() string            { return m.id }
func (m *recordingRule) SignalTypes() []string { return []string{"milestone", "rareEvent"} }
func (m *recordingRule) Config() rule.Config {
	return rule.Config{ID: m.id, Type: "recording", Enabled: true}
}

func (m *recordingRule) Evaluate(ctx context.Context, sig signal.Signal) (*rule.Trigger, error) {
	m.seen = append(m.seen, signal.Tag(sig))
	if m.fail {
		return nil, errors.New("rule failed")
	}
	if !m.match {
		return nil, nil
	}
	return rule.NewTrigger(m.id, 1, sig, "recorded"), nil
}

type countingAction struct {
	id        string
	fail      bool
	calls     int
	lastState *progression.State
	lastTag   string
}

func (m *countingAction) ID() string { return m.id }
func (m *countingAction) Config() action.Config {
	return action.Config{ID: m.id, Type: "counting", Enabled: true}
}

func (m *countingAction) Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	m.calls++
	m.lastTag = trigger.Tag
	if playerCtx != nil {
		m.lastState = playerCtx.State
	}
	if m.fail {
		return errors.New("action failed")
	}
	return nil
}

func setupManager(t *testing.T, rules []rule.Rule, actions []action.Action, bindings map[string][]string) *pipeline.Manager {
	t.Helper()

	ruleRegistry := rule.NewRegistry()
	for _, r := range rules {
		if err := ruleRegistry.Register(r); err != nil {
			t.Fatalf("Register(%s) error = %v", r.ID(), err)
		}
	}
	actionRegistry := action.NewRegistry()
	for _, a := range actions {
		if err := actionRegistry.Register(a); err != nil {
			t.Fatalf("Register(%s) error = %v", a.ID(), err)
		}
	}

	return pipeline.NewManager(signal.NewProcessor("test-namespace"), rule.NewEngine(ruleRegistry), action.NewExecutor(actionRegistry), bindings)
}

func outcome(count int64, effects ...string) progression.Outcome {
	return progression.Outcome{
		State:    &progression.State{ClickCount: count},
		Effects:  effects,
		Accepted: true,
	}
}

var now = time.UnixMilli(1_700_000_000_000)

func TestProcessOutcome_NoEffects(t *testing.T) {
	r := &recordingRule{id: "story", match: true}
	a := &countingAction{id: "react"}
	manager := setupManager(t, []rule.Rule{r}, []action.Action{a}, map[string][]string{"story": {"react"}})

	if err := manager.ProcessOutcome(context.Background(), "test-user", outcome(2), nil, now); err != nil {
		t.Fatalf("ProcessOutcome() error = %v", err)
	}
	if len(r.seen) != 0 || a.calls != 0 {
		t.Errorf("evaluations = %d, calls = %d, expected none", len(r.seen), a.calls)
	}
}

func TestProcessOutcome_EffectsInOrder(t *testing.T) {
	r := &recordingRule{id: "story", match: true}
	a := &countingAction{id: "react"}
	manager := setupManager(t, []rule.Rule{r}, []action.Action{a}, map[string][]string{"story": {"react"}})

	err := manager.ProcessOutcome(context.Background(), "test-user",
		outcome(5, "milestone:quiet", "milestone:listens", "ambient:hum", "rareEvent:autoTap"), nil, now)
	if err != nil {
		t.Fatalf("ProcessOutcome() error = %v", err)
	}

	expected := []string{"milestone:quiet", "milestone:listens", "rareEvent:autoTap"}
	if len(r.seen) != len(expected) {
		t.Fatalf("rule saw %v, expected %v", r.seen, expected)
	}
	for i := range expected {
		if r.seen[i] != expected[i] {
			t.Errorf("seen[%d] = %s, expected %s", i, r.seen[i], expected[i])
		}
	}

	if a.calls != 3 || a.lastTag != "rareEvent:autoTap" {
		t.Errorf("calls = %d, last tag = %s, expected 3 ending with rareEvent:autoTap", a.calls, a.lastTag)
	}
	if a.lastState == nil || a.lastState.ClickCount != 5 {
		t.Errorf("action state = %+v, expected click count 5", a.lastState)
	}
}

func TestProcessOutcome_NoTriggerOrNoBinding(t *testing.T) {
	tests := []struct {
		name     string
		match    bool
		bindings map[string][]string
	}{
		{name: "rule does not match", match: false, bindings: map[string][]string{"story": {"react"}}},
		{name: "rule has no actions", match: true, bindings: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &countingAction{id: "react"}
			manager := setupManager(t, []rule.Rule{&recordingRule{id: "story", match: tt.match}}, []action.Action{a}, tt.bindings)

			if err := manager.ProcessOutcome(context.Background(), "test-user", outcome(1, "milestone:quiet"), nil, now); err != nil {
				t.Fatalf("ProcessOutcome() error = %v", err)
			}
			if a.calls != 0 {
				t.Errorf("calls = %d, expected 0", a.calls)
			}
		})
	}
}

func TestProcessOutcome_RuleErrorIsSkipped(t *testing.T) {
	broken := &recordingRule{id: "a-broken", fail: true}
	working := &recordingRule{id: "b-working", match: true}
	a := &countingAction{id: "react"}
	manager := setupManager(t, []rule.Rule{broken, working}, []action.Action{a}, map[string][]string{"b-working": {"react"}})

	if err := manager.ProcessOutcome(context.Background(), "test-user", outcome(1, "milestone:quiet"), nil, now); err != nil {
		t.Fatalf("ProcessOutcome() error = %v", err)
	}
	if a.calls != 1 {
		t.Errorf("calls = %d, expected 1", a.calls)
	}
}

func TestProcessOutcome_ActionFailure(t *testing.T) {
	r := &recordingRule{id: "story", match: true}
	failing := &countingAction{id: "failing-action", fail: true}
	after := &countingAction{id: "after"}
	manager := setupManager(t, []rule.Rule{r}, []action.Action{failing, after}, map[string][]string{"story": {"failing-action", "after"}})

	failedBefore := testutil.ToFloat64(metrics.ActionsTotal.WithLabelValues("failing-action", metrics.ResultFailed))
	triggersBefore := testutil.ToFloat64(metrics.TriggersTotal.WithLabelValues("story"))

	err := manager.ProcessOutcome(context.Background(), "test-user", outcome(1, "milestone:quiet", "milestone:listens"), nil, now)
	if err != nil {
		t.Fatalf("action failures should not fail the outcome: %v", err)
	}

	if failing.calls != 2 || after.calls != 0 {
		t.Errorf("calls = (%d, %d), expected (2, 0)", failing.calls, after.calls)
	}
	if got := testutil.ToFloat64(metrics.ActionsTotal.WithLabelValues("failing-action", metrics.ResultFailed)) - failedBefore; got != 2 {
		t.Errorf("failed actions = %v, expected 2", got)
	}
	if got := testutil.ToFloat64(metrics.TriggersTotal.WithLabelValues("story")) - triggersBefore; got != 2 {
		t.Errorf("triggers = %v, expected 2", got)
	}
}

func TestProcessOutcome_CanceledContext(t *testing.T) {
	manager := setupManager(t, []rule.Rule{&recordingRule{id: "story", match: true}}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := manager.ProcessOutcome(ctx, "test-user", outcome(1, "milestone:quiet"), nil, now); !errors.Is(err, context.Canceled) {
		t.Errorf("ProcessOutcome() error = %v, expected context.Canceled", err)
	}
}
