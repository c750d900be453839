// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package theme

import (
	"errors"
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/progression"
)

// Validate checks a theme for content errors. All problems are reported
// together as a joined error, one per problem.
func Validate(t *progression.Theme) error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if t.ReducedFactor < 0 || t.ReducedFactor > 1 {
		add("reducedFactor %v must be within [0, 1]", t.ReducedFactor)
	}

	kinds := make(map[string]bool)
	for _, k := range t.ModifierKinds {
		if k.Kind == "" {
			add("modifier kind with empty name")
			continue
		}
		if kinds[k.Kind] {
			add("duplicate modifier kind: %s", k.Kind)
		}
		kinds[k.Kind] = true

		switch k.Op {
		case progression.OpAdd:
		case progression.OpMul:
			if k.Value < 0 {
				add("modifier kind %s has negative multiplier %v", k.Kind, k.Value)
			}
		case progression.OpBonus:
			if !isChance(k.Chance) {
				add("modifier kind %s has chance %v outside [0, 1]", k.Kind, k.Chance)
			}
		default:
			add("modifier kind %s has unknown op %q", k.Kind, k.Op)
		}
	}

	for _, m := range t.Milestones {
		if m.Tag == "" {
			add("milestone at %d has empty tag", m.At)
		}
		if m.At < 1 {
			add("milestone %s has non-positive count %d", m.Tag, m.At)
		}
		if g := m.Modifier; g != nil {
			if !kinds[g.Kind] {
				add("milestone %s grants undeclared modifier kind %s", m.Tag, g.Kind)
			}
			if g.DurationMs <= 0 {
				add("milestone %s grants modifier with non-positive duration", m.Tag)
			}
		}
		for _, b := range m.Branches {
			if _, ok := t.Branches[b]; !ok {
				add("milestone %s offers unknown branch %s", m.Tag, b)
			}
		}
	}

	for _, g := range t.Generators {
		if g.Tag == "" {
			add("generator with empty tag")
		}
		if g.Count < 0 || g.Start <= 0 || g.Ratio <= 0 || g.Jitter < 0 {
			add("generator %s needs positive start/ratio and non-negative count/jitter", g.Tag)
		}
	}

	for _, ev := range t.RareEvents {
		validateEvent("rare event", ev, add)
	}
	for _, ev := range t.AmbientEvents {
		validateEvent("ambient event", ev, add)
	}

	for _, d := range t.Drops {
		if d.Currency == "" {
			add("drop with empty currency")
		}
		if !isChance(d.Chance) {
			add("drop %s has chance %v outside [0, 1]", d.Currency, d.Chance)
		}
		if d.IntensitySlope < 0 {
			add("drop %s has negative intensity slope", d.Currency)
		}
		if d.Amount < 0 {
			add("drop %s has negative amount", d.Currency)
		}
	}

	upgrades := make(map[string]bool)
	for _, u := range t.Upgrades {
		if u.ID == "" {
			add("upgrade with empty id")
			continue
		}
		if upgrades[u.ID] {
			add("duplicate upgrade id: %s", u.ID)
		}
		upgrades[u.ID] = true
		if u.Currency == "" || u.Cost < 0 {
			add("upgrade %s needs a currency and a non-negative cost", u.ID)
		}
		if !kinds[u.Kind] {
			add("upgrade %s grants undeclared modifier kind %s", u.ID, u.Kind)
		}
		if u.DurationMs <= 0 {
			add("upgrade %s has non-positive duration", u.ID)
		}
	}

	for id, steps := range t.Branches {
		if len(steps) == 0 {
			add("branch %s has no steps", id)
		}
	}

	return errors.Join(errs...)
}

func validateEvent(kind string, ev progression.Event, add func(string, ...interface{})) {
	if ev.Tag == "" {
		add("%s with empty tag", kind)
	}
	if !isChance(ev.Chance) {
		add("%s %s has chance %v outside [0, 1]", kind, ev.Tag, ev.Chance)
	}
}

func isChance(p float64) bool {
	return p >= 0 && p <= 1
}
