package rule_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/rule/builtin"
	"github.com/AccelByte/extend-button-story/pkg/signal"
)

func init() {
	builtin.Register()
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		cfg       rule.Config
		expectNil bool
		wantErr   string
	}{
		{
			name: "tag match",
			cfg:  rule.Config{ID: "story", Type: builtin.TypeTagMatch, Enabled: true, Parameters: common.Params{"prefixes": []interface{}{"milestone:"}}},
		},
		{
			name: "streak with cooldown",
			cfg:  rule.Config{ID: "streaky", Type: builtin.TypeStreak, Enabled: true, Cooldown: &rule.Cooldown{Duration: time.Minute}},
		},
		{
			name:      "disabled",
			cfg:       rule.Config{ID: "off", Type: "no_such_type"},
			expectNil: true,
		},
		{
			name:    "unknown type",
			cfg:     rule.Config{ID: "bad", Type: "no_such_type", Enabled: true},
			wantErr: "unknown type",
		},
		{
			name:    "factory rejects parameters",
			cfg:     rule.Config{ID: "empty", Type: builtin.TypeTagMatch, Enabled: true},
			wantErr: "tags or prefixes",
		},
		{
			name:    "bad cooldown",
			cfg:     rule.Config{ID: "cool", Type: builtin.TypeStreak, Enabled: true, Cooldown: &rule.Cooldown{Duration: time.Second, Scope: "session"}},
			wantErr: "cooldown scope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rule.Build(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Build() error = %v, expected it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if (r == nil) != tt.expectNil {
				t.Fatalf("Build() = %v, expectNil %v", r, tt.expectNil)
			}
			if r != nil && r.ID() != tt.cfg.ID {
				t.Errorf("ID() = %s, expected %s", r.ID(), tt.cfg.ID)
			}
		})
	}
}

func TestTypes(t *testing.T) {
	types := strings.Join(rule.Types(), ",")
	for _, want := range []string{builtin.TypeCurrencyThreshold, builtin.TypeStreak, builtin.TypeTagMatch} {
		if !strings.Contains(types, want) {
			t.Errorf("Types() = %s, missing %s", types, want)
		}
	}
}

func TestLoad(t *testing.T) {
	registry := rule.NewRegistry()
	err := rule.Load(registry, []rule.Config{
		{ID: "story", Type: builtin.TypeTagMatch, Enabled: true, Parameters: common.Params{"tags": "milestone:vent"}},
		{ID: "streak", Type: builtin.TypeStreak, Enabled: true},
		{ID: "off", Type: builtin.TypeStreak},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if registry.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", registry.Len())
	}

	engine := rule.NewEngine(registry)
	sig := signal.NewEffectSignal("milestone:vent", "p1", time.Now(), signal.BuildPlayerContext("p1", "ns", nil, nil))
	triggers, _ := engine.Evaluate(context.Background(), sig)
	if len(triggers) != 1 || triggers[0].RuleID != "story" {
		t.Errorf("triggers = %v, expected only story (streak has no state to read)", triggers)
	}
}

func TestLoad_AllOrNothing(t *testing.T) {
	registry := rule.NewRegistry()
	err := rule.Load(registry, []rule.Config{
		{ID: "good", Type: builtin.TypeStreak, Enabled: true},
		{ID: "bad-1", Type: "nope", Enabled: true},
		{ID: "bad-2", Type: builtin.TypeTagMatch, Enabled: true},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, id := range []string{"bad-1", "bad-2"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not mention %s", err, id)
		}
	}
	if registry.Len() != 0 {
		t.Errorf("Len() = %d, expected nothing registered", registry.Len())
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	registry := rule.NewRegistry()
	err := rule.Load(registry, []rule.Config{
		{ID: "dup", Type: builtin.TypeStreak, Enabled: true},
		{ID: "dup", Type: builtin.TypeStreak, Enabled: true},
	})
	if err == nil {
		t.Error("expected duplicate id error")
	}
}
