// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package theme

import (
	"github.com/AccelByte/extend-button-story/pkg/milestone"
	"github.com/AccelByte/extend-button-story/pkg/progression"
)

// Builder assembles a theme in code.
type Builder struct {
	theme progression.Theme
}

// NewBuilder starts an empty theme.
func NewBuilder(name string) *Builder {
	return &Builder{
		theme: progression.Theme{
			Name:     name,
			Branches: make(map[string][]progression.BranchStep),
		},
	}
}

// Tune adjusts scalar knobs such as the click currency or debounce interval.
func (b *Builder) Tune(fn func(t *progression.Theme)) *Builder {
	fn(&b.theme)
	return b
}

func (b *Builder) Milestone(e milestone.Entry) *Builder {
	b.theme.Milestones = append(b.theme.Milestones, e)
	return b
}

func (b *Builder) Generator(g milestone.Generator) *Builder {
	b.theme.Generators = append(b.theme.Generators, g)
	return b
}

func (b *Builder) RareEvent(ev progression.Event) *Builder {
	b.theme.RareEvents = append(b.theme.RareEvents, ev)
	return b
}

func (b *Builder) AmbientEvent(ev progression.Event) *Builder {
	b.theme.AmbientEvents = append(b.theme.AmbientEvents, ev)
	return b
}

func (b *Builder) Drop(d progression.Drop) *Builder {
	b.theme.Drops = append(b.theme.Drops, d)
	return b
}

func (b *Builder) ModifierKind(k progression.ModifierKind) *Builder {
	b.theme.ModifierKinds = append(b.theme.ModifierKinds, k)
	return b
}

func (b *Builder) Upgrade(u progression.Upgrade) *Builder {
	b.theme.Upgrades = append(b.theme.Upgrades, u)
	return b
}

func (b *Builder) Branch(id string, steps ...progression.BranchStep) *Builder {
	b.theme.Branches[id] = append(b.theme.Branches[id], steps...)
	return b
}

func (b *Builder) SoftLine(every int64, title string) *Builder {
	b.theme.SoftLines = append(b.theme.SoftLines, progression.SoftLine{Every: every, Title: title})
	return b
}

// Build validates and returns the theme. The builder can keep being used;
// later changes do not affect themes already built.
func (b *Builder) Build() (*progression.Theme, error) {
	t := b.theme
	t.Milestones = append([]milestone.Entry(nil), b.theme.Milestones...)
	t.Generators = append([]milestone.Generator(nil), b.theme.Generators...)
	t.RareEvents = append([]progression.Event(nil), b.theme.RareEvents...)
	t.AmbientEvents = append([]progression.Event(nil), b.theme.AmbientEvents...)
	t.Drops = append([]progression.Drop(nil), b.theme.Drops...)
	t.ModifierKinds = append([]progression.ModifierKind(nil), b.theme.ModifierKinds...)
	t.Upgrades = append([]progression.Upgrade(nil), b.theme.Upgrades...)
	t.SoftLines = append([]progression.SoftLine(nil), b.theme.SoftLines...)
	t.Branches = make(map[string][]progression.BranchStep, len(b.theme.Branches))
	for id, steps := range b.theme.Branches {
		t.Branches[id] = append([]progression.BranchStep(nil), steps...)
	}

	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
