// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePress(t *testing.T) {
	acceptedBefore := testutil.ToFloat64(PressesTotal.WithLabelValues(ResultAccepted))
	debouncedBefore := testutil.ToFloat64(PressesTotal.WithLabelValues(ResultDebounced))

	ObservePress(true)
	ObservePress(false)

	if got := testutil.ToFloat64(PressesTotal.WithLabelValues(ResultAccepted)) - acceptedBefore; got != 1 {
		t.Errorf("accepted presses = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(PressesTotal.WithLabelValues(ResultDebounced)) - debouncedBefore; got != 1 {
		t.Errorf("debounced presses = %v, expected 1", got)
	}
}

func TestObserveEffects(t *testing.T) {
	tests := []struct {
		name          string
		effects       []string
		kind          string
		expectKind    float64
		expectExpired float64
	}{
		{name: "expired modifiers", effects: []string{"buffExpired:overclock", "buffExpired:taxHoliday"}, kind: "buffExpired", expectKind: 2, expectExpired: 2},
		{name: "ambient tag", effects: []string{"ambient:hum"}, kind: "ambient", expectKind: 1},
		{name: "uncategorized tag", effects: []string{"sparkle"}, kind: "effect", expectKind: 1},
		{name: "no effects", effects: nil, kind: "drop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kindBefore := testutil.ToFloat64(EffectsTotal.WithLabelValues(tt.kind))
			expiredBefore := testutil.ToFloat64(ModifiersExpiredTotal)

			ObserveEffects(tt.effects)

			if got := testutil.ToFloat64(EffectsTotal.WithLabelValues(tt.kind)) - kindBefore; got != tt.expectKind {
				t.Errorf("effects{kind=%s} delta = %v, expected %v", tt.kind, got, tt.expectKind)
			}
			if got := testutil.ToFloat64(ModifiersExpiredTotal) - expiredBefore; got != tt.expectExpired {
				t.Errorf("expired delta = %v, expected %v", got, tt.expectExpired)
			}
		})
	}
}

func TestObserveAction(t *testing.T) {
	tests := []struct {
		name     string
		ok       bool
		reverted bool
		result   string
	}{
		{name: "ok", ok: true, result: ResultOK},
		{name: "failed", result: ResultFailed},
		{name: "reverted", ok: true, reverted: true, result: ResultReverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := ActionsTotal.WithLabelValues("publish-effect", tt.result)
			before := testutil.ToFloat64(counter)

			ObserveAction("publish-effect", tt.ok, tt.reverted)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s actions = %v, expected 1", tt.result, got)
			}
		})
	}

	before := testutil.ToFloat64(TriggersTotal.WithLabelValues("story-feed"))
	ObserveTrigger("story-feed")
	if got := testutil.ToFloat64(TriggersTotal.WithLabelValues("story-feed")) - before; got != 1 {
		t.Errorf("triggers = %v, expected 1", got)
	}
}

func TestCollectors_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	ActiveSessions.Set(3)
	if got := testutil.ToFloat64(ActiveSessions); got != 3 {
		t.Errorf("ActiveSessions = %v, expected 3", got)
	}
	ActiveSessions.Set(0)
}
