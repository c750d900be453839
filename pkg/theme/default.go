// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package theme

import (
	"github.com/AccelByte/extend-button-story/pkg/milestone"
	"github.com/AccelByte/extend-button-story/pkg/progression"
)

// DefaultName is the name of the built-in theme.
const DefaultName = "button-story"

// Default returns the built-in "Button Story" theme.
func Default() *progression.Theme {
	t, err := NewBuilder(DefaultName).
		Tune(func(t *progression.Theme) {
			t.DefaultAccent = "#6C8EF5"
		}).
		ModifierKind(progression.ModifierKind{Kind: "taxHoliday", Op: progression.OpMul, Value: 2}).
		ModifierKind(progression.ModifierKind{Kind: "overclock", Op: progression.OpAdd, Value: 1}).
		ModifierKind(progression.ModifierKind{Kind: "luckyStreak", Op: progression.OpBonus, Value: 5, Chance: 0.1}).
		Milestone(milestone.Entry{At: 1, Tag: "milestone:quiet", Title: "The room is quiet.", Accent: "#6C8EF5"}).
		Milestone(milestone.Entry{At: 5, Tag: "milestone:listens", Title: "Something listens back.", Effects: []string{"gentlePulse"}}).
		Milestone(milestone.Entry{At: 10, Tag: "milestone:audio", Unlocks: []string{"audio"}}).
		Milestone(milestone.Entry{At: 12, Tag: "milestone:noteReveal", Title: "A note appears under the button.", Effects: []string{"noteReveal"}}).
		Milestone(milestone.Entry{
			At: 25, Tag: "milestone:vent", Title: "You hear the vent breathe.",
			Effects: []string{"vignette"}, Rewards: map[string]int64{"echoes": 5},
		}).
		Milestone(milestone.Entry{
			At: 50, Tag: "milestone:timeSkew", Title: "The timestamp counts backward.",
			Effects:  []string{"timeSkew"},
			Modifier: &milestone.Grant{Kind: "taxHoliday", Label: "Tax Holiday", DurationMs: 60000},
		}).
		Milestone(milestone.Entry{At: 75, Tag: "milestone:ghostTap", Title: "You are not the only one pressing.", Effects: []string{"ghostTap"}}).
		Milestone(milestone.Entry{
			At: 100, Tag: "milestone:handle", Title: "A handle appears. Do you pull it or keep pressing?",
			Branches: []string{"pull_handle", "keep_pressing"},
		}).
		Generator(milestone.Generator{
			Tag: "milestone:echo%d", Title: "The echo grows louder.",
			Start: 150, Ratio: 1.6, Count: 12, Jitter: 9,
			Rewards: map[string]int64{"echoes": 10},
		}).
		Branch("pull_handle",
			progression.BranchStep{Title: "A corridor unfolds.", Effects: []string{"depthOpen"}},
			progression.BranchStep{Title: "Footsteps align with yours.", Effects: []string{"parallax"}},
		).
		Branch("keep_pressing",
			progression.BranchStep{Title: "The surface warms.", Effects: []string{"heatHaze"}},
		).
		RareEvent(progression.Event{Tag: "rareEvent:autoTap", Title: "The button presses itself once.", Chance: 0.02, Effects: []string{"autoTap"}}).
		RareEvent(progression.Event{Tag: "rareEvent:cameraGlitch", Title: "A distant hallway flickers.", Chance: 0.01, Effects: []string{"cameraGlitch"}}).
		AmbientEvent(progression.Event{Tag: "ambient:hum", Chance: 0.05}).
		AmbientEvent(progression.Event{Tag: "ambient:creak", Chance: 0.02}).
		Drop(progression.Drop{Currency: "echoes", Chance: 0.02, IntensitySlope: 0.08, Amount: 1}).
		Upgrade(progression.Upgrade{ID: "overclock", Currency: "clicks", Cost: 50, Kind: "overclock", Label: "Overclock", DurationMs: 30000}).
		Upgrade(progression.Upgrade{ID: "charm", Currency: "echoes", Cost: 10, Kind: "luckyStreak", Label: "Lucky Charm", DurationMs: 120000}).
		SoftLine(3, "You press. Something notes it.").
		SoftLine(7, "A faint tick traces the air.").
		Build()
	if err != nil {
		panic("built-in theme is invalid: " + err.Error())
	}
	return t
}
