// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"math"
	"sort"

	"github.com/AccelByte/extend-button-story/pkg/rng"
)

// baseReward is the per-press reward without random bonus rolls:
// (1 + sum of additive values) * product of multiplicative values.
func (e *Engine) baseReward(s *State, nowMs int64) int64 {
	add, mul := 0.0, 1.0
	for _, m := range s.Modifiers {
		if m.ExpiresAtMs <= nowMs {
			continue
		}
		k, ok := e.kinds[m.Kind]
		if !ok {
			continue
		}
		switch k.Op {
		case OpAdd:
			add += k.Value
		case OpMul:
			mul *= k.Value
		}
	}
	return floorNonNegative((1 + add) * mul)
}

// pressReward applies additive, then multiplicative, then bonus modifiers.
// Bonus rolls draw once each, in grant order.
func (e *Engine) pressReward(s *State, nowMs int64, r rng.Source) int64 {
	value := float64(e.baseReward(s, nowMs))
	for _, m := range s.Modifiers {
		if m.ExpiresAtMs <= nowMs {
			continue
		}
		k, ok := e.kinds[m.Kind]
		if !ok || k.Op != OpBonus {
			continue
		}
		if r.Float64() < k.Chance {
			value += k.Value
		}
	}
	return floorNonNegative(value)
}

// rollDrops samples every secondary currency drop once, in theme order.
func (e *Engine) rollDrops(s *State, r rng.Source) []string {
	if len(e.theme.Drops) == 0 {
		return nil
	}
	intensity := e.theme.Intensity(s.ClickCount)

	var tags []string
	for _, d := range e.theme.Drops {
		p := clamp01(d.Chance + d.IntensitySlope*intensity)
		if r.Float64() < p {
			s.addCurrency(d.Currency, d.Amount)
			tags = append(tags, TagDrop+d.Currency)
		}
	}
	return tags
}

// fireMilestones applies every not-yet-fired entry at or below the current
// click count and advances the cursor. It returns the fired tags in table
// order and the last non-empty milestone title.
func (e *Engine) fireMilestones(s *State, nowMs int64) ([]string, string) {
	var tags []string
	title := ""
	for s.LastEventIndex < e.table.Len() {
		entry := e.table.At(s.LastEventIndex)
		if entry.At > s.ClickCount {
			break
		}

		for currency, amount := range entry.Rewards {
			s.addCurrency(currency, amount)
		}
		s.Unlocks = addToSet(s.Unlocks, entry.Unlocks...)
		s.Effects = addToSet(s.Effects, entry.Effects...)
		if entry.Accent != "" {
			s.Accent = entry.Accent
		}
		if entry.Title != "" {
			title = entry.Title
		}
		if g := entry.Modifier; g != nil {
			e.grant(s, g.Kind, g.Label, g.DurationMs, nowMs)
		}

		tags = append(tags, entry.Tag)
		s.LastEventIndex++
	}
	return tags, title
}

// rollEvent draws once per event in order and returns the first hit.
// Probabilities are multiplied by scale and by the reduced factor when
// reduced intensity is on.
func (e *Engine) rollEvent(events []Event, scale float64, r rng.Source) *Event {
	factor := scale
	if e.reduced {
		factor *= e.theme.ReducedFactor
	}
	for i := range events {
		if r.Float64() < events[i].Chance*factor {
			return &events[i]
		}
	}
	return nil
}

func (e *Engine) softLine(count int64) string {
	for _, l := range e.theme.SoftLines {
		if l.Every > 0 && count%l.Every == 0 {
			return l.Title
		}
	}
	return e.theme.IdleLine
}

func (e *Engine) advanceBranch(s *State) {
	steps := e.theme.Branches[s.BranchID]
	if len(steps) == 0 {
		s.Title = e.softLine(s.ClickCount)
		return
	}
	s.BranchIndex = minInt(s.BranchIndex+1, len(steps)-1)
	step := steps[s.BranchIndex]
	s.Title = step.Title
	s.Effects = addToSet(s.Effects, step.Effects...)
}

func sortByExpiry(mods []Modifier) {
	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].ExpiresAtMs != mods[j].ExpiresAtMs {
			return mods[i].ExpiresAtMs < mods[j].ExpiresAtMs
		}
		return mods[i].Kind < mods[j].Kind
	})
}

func floorNonNegative(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Floor(v))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
