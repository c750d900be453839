// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestEncode_WritesSchemaVersion(t *testing.T) {
	data, err := Encode(New(testTheme(), 3).Snapshot())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("encoded payload is not JSON: %v", err)
	}
	if raw["v"] != float64(SchemaVersion) {
		t.Errorf("v = %v, expected %d", raw["v"], SchemaVersion)
	}
}

func TestRestore_ContinuesRandomStream(t *testing.T) {
	theme := testTheme()
	theme.RareEvents = []Event{{Tag: "rareEvent:autoTap", Chance: 0.3}}
	theme.Drops = []Drop{{Currency: "echoes", Chance: 0.4}}

	uninterrupted := New(theme, 1234)
	interrupted := New(theme, 1234)

	for i := int64(0); i < 20; i++ {
		uninterrupted.ApplyPress(at(i * 20))
		interrupted.ApplyPress(at(i * 20))
	}
	interrupted.GrantModifier("lucky", "", time.Hour, at(0))
	uninterrupted.GrantModifier("lucky", "", time.Hour, at(0))

	data, err := Encode(interrupted.Snapshot())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	resumed := Restore(theme, decoded)

	for i := int64(20); i < 60; i++ {
		a := uninterrupted.ApplyPress(at(i * 20))
		b := resumed.ApplyPress(at(i * 20))
		if !reflect.DeepEqual(a.Effects, b.Effects) {
			t.Fatalf("press %d effects diverged: %v vs %v", i+1, a.Effects, b.Effects)
		}
	}

	a, b := uninterrupted.Snapshot(), resumed.Snapshot()
	if !reflect.DeepEqual(a.Currencies, b.Currencies) || a.RNGState != b.RNGState {
		t.Errorf("resumed session diverged: %+v vs %+v", a, b)
	}
}

func TestDecode_LegacyLayout(t *testing.T) {
	legacy := []byte(`{"v":1,"seed":424242,"clickCount":13,"title":"A note appears under the button.",` +
		`"effects":["gentlePulse","noteReveal"],"accent":"#6C8EF5","branchId":null,"branchIndex":0}`)

	s, err := Decode(legacy)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.Seed != 424242 || s.RNGState != 424242 {
		t.Errorf("Seed/RNGState = %d/%d, expected 424242", s.Seed, s.RNGState)
	}
	if s.LastEventIndex != -1 {
		t.Errorf("LastEventIndex = %d, expected -1 before restore", s.LastEventIndex)
	}

	e := Restore(testTheme(), s)
	restored := e.Snapshot()
	if restored.LastEventIndex != 3 {
		t.Errorf("LastEventIndex = %d, expected 3 after restore", restored.LastEventIndex)
	}

	// The next press must not replay milestones already passed.
	out := e.ApplyPress(at(0))
	if tags := milestoneTags(t, e, out.Effects); len(tags) != 0 {
		t.Errorf("restored session replayed %v", tags)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"future version", `{"v":99,"seed":1}`},
		{"negative count", `{"v":2,"seed":1,"clickCount":-4}`},
		{"wrong type", `{"v":2,"clickCount":"many"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrMalformedState) {
				t.Errorf("Decode() error = %v, expected ErrMalformedState", err)
			}
		})
	}
}

func TestDecode_UnversionedIsLegacy(t *testing.T) {
	s, err := Decode([]byte(`{"seed":9,"clickCount":3,"title":"The room is quiet."}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.ClickCount != 3 || s.Seed != 9 {
		t.Errorf("ClickCount, Seed = %d, %d, expected 3, 9", s.ClickCount, s.Seed)
	}
	if s.RNGState != 9 {
		t.Errorf("RNGState = %d, expected the seed", s.RNGState)
	}
	if s.LastEventIndex != -1 {
		t.Errorf("LastEventIndex = %d, expected -1 for derivation", s.LastEventIndex)
	}
}

func TestRestore_ClampsCursorAndCollapsesKinds(t *testing.T) {
	s := &State{
		ClickCount:     6,
		Streak:         500,
		LastEventIndex: 4,
		Currencies:     map[string]int64{"clicks": -3},
		Modifiers: []Modifier{
			{ID: "a", Kind: "doubler", ExpiresAtMs: 100},
			{ID: "b", Kind: "doubler", ExpiresAtMs: 900},
		},
	}

	restored := Restore(testTheme(), s).Snapshot()
	if restored.LastEventIndex != 2 {
		t.Errorf("LastEventIndex = %d, expected 2", restored.LastEventIndex)
	}
	if restored.Streak != DefaultStreakCap {
		t.Errorf("Streak = %d, expected %d", restored.Streak, DefaultStreakCap)
	}
	if restored.Currency("clicks") != 0 {
		t.Errorf("clicks = %d, expected 0", restored.Currency("clicks"))
	}
	if len(restored.Modifiers) != 1 || restored.Modifiers[0].ID != "b" {
		t.Errorf("Modifiers = %+v, expected only b", restored.Modifiers)
	}
	if restored.Title != "Something listens back." {
		t.Errorf("Title = %q, expected latest milestone title", restored.Title)
	}
	if s.Modifiers[0].ID != "a" {
		t.Error("Restore modified the caller's state")
	}
}

func TestRestore_PendingMilestonesCatchUp(t *testing.T) {
	// A cursor behind the click count fires the pending entries on the next press.
	s := &State{ClickCount: 12, LastEventIndex: 1, Currencies: map[string]int64{}}
	e := Restore(testTheme(), s)

	out := e.ApplyPress(at(0))
	got := milestoneTags(t, e, out.Effects)
	expected := []string{"milestone:listens", "milestone:note"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("caught up %v, expected %v", got, expected)
	}
}
