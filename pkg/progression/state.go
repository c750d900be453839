// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"math"
	"sort"
	"time"
)

// Modifier is a timed buff. A modifier is active while now < ExpiresAtMs.
type Modifier struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	ExpiresAtMs int64  `json:"expiresAtEpochMs"`
}

// State is the per-session progression snapshot.
type State struct {
	ClickCount     int64            `json:"clickCount"`
	Streak         int              `json:"streak"`
	Currencies     map[string]int64 `json:"currencies"`
	Modifiers      []Modifier       `json:"activeModifiers"`
	Seed           uint32           `json:"seed"`
	RNGState       uint32           `json:"rngState"`
	LastEventIndex int              `json:"lastEventIndex"`
	LastPressAtMs  int64            `json:"lastPressAtEpochMs"`
	HasPressed     bool             `json:"hasPressed"`
	Unlocks        []string         `json:"unlocks"`
	Title          string           `json:"title"`
	Effects        []string         `json:"effects"`
	Accent         string           `json:"accent"`
	BranchID       string           `json:"branchId"`
	BranchIndex    int              `json:"branchIndex"`
}

// Outcome is the result of an engine operation. State is a private copy.
type Outcome struct {
	State    *State   `json:"state"`
	Effects  []string `json:"effects"`
	Accepted bool     `json:"accepted"`
}

// Currency returns the balance of id, zero when the currency was never granted.
func (s *State) Currency(id string) int64 {
	return s.Currencies[id]
}

// ActiveModifiers returns the modifiers still active at now.
func (s *State) ActiveModifiers(now time.Time) []Modifier {
	nowMs := toMs(now)
	var out []Modifier
	for _, m := range s.Modifiers {
		if m.ExpiresAtMs > nowMs {
			out = append(out, m)
		}
	}
	return out
}

// Modifier returns the modifier of the given kind, if any.
func (s *State) Modifier(kind string) (Modifier, bool) {
	for _, m := range s.Modifiers {
		if m.Kind == kind {
			return m, true
		}
	}
	return Modifier{}, false
}

// HasUnlock reports whether flag was granted.
func (s *State) HasUnlock(flag string) bool {
	i := sort.SearchStrings(s.Unlocks, flag)
	return i < len(s.Unlocks) && s.Unlocks[i] == flag
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Currencies = make(map[string]int64, len(s.Currencies))
	for k, v := range s.Currencies {
		c.Currencies[k] = v
	}
	c.Modifiers = append([]Modifier(nil), s.Modifiers...)
	c.Unlocks = append([]string(nil), s.Unlocks...)
	c.Effects = append([]string(nil), s.Effects...)
	return &c
}

func (s *State) addCurrency(id string, amount int64) {
	cur := s.Currencies[id]
	var v int64
	switch {
	case amount > 0 && cur > math.MaxInt64-amount:
		v = math.MaxInt64
	case cur+amount < 0:
		v = 0
	default:
		v = cur + amount
	}
	s.Currencies[id] = v
}

// addToSet inserts values into a sorted set.
func addToSet(set []string, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		i := sort.SearchStrings(set, v)
		if i < len(set) && set[i] == v {
			continue
		}
		set = append(set, "")
		copy(set[i+1:], set[i:])
		set[i] = v
	}
	return set
}

func toMs(t time.Time) int64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return ms
}
