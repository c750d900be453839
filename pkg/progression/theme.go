// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import "github.com/AccelByte/extend-button-story/pkg/milestone"

// ModifierOp selects how a modifier kind changes the per-press reward.
type ModifierOp string

const (
	// OpAdd adds Value to the base reward.
	OpAdd ModifierOp = "add"
	// OpMul multiplies the reward after all additive modifiers.
	OpMul ModifierOp = "mul"
	// OpBonus adds Value with probability Chance, one draw per press.
	OpBonus ModifierOp = "bonus"
)

// Defaults applied to zero-valued theme fields.
const (
	DefaultClickCurrency      = "clicks"
	DefaultIntensityHalfPoint = 50
	DefaultReducedFactor      = 0.5
	DefaultMinIntervalMs      = 10
	DefaultStreakCap          = 50
	DefaultInitialTitle       = "Press to begin."
	DefaultIdleLine           = "Press again."
)

// ModifierKind defines the reward effect of a modifier kind.
type ModifierKind struct {
	Kind   string     `yaml:"kind" json:"kind"`
	Op     ModifierOp `yaml:"op" json:"op"`
	Value  float64    `yaml:"value" json:"value"`
	Chance float64    `yaml:"chance,omitempty" json:"chance,omitempty"`
}

// Event is a rare or ambient event sampled from the session RNG.
type Event struct {
	Tag     string   `yaml:"tag" json:"tag"`
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Chance  float64  `yaml:"chance" json:"chance"`
	Effects []string `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// Drop is a secondary currency grant sampled on each accepted press.
// The probability is Chance + IntensitySlope*intensity, clamped to [0, 1].
type Drop struct {
	Currency       string  `yaml:"currency" json:"currency"`
	Chance         float64 `yaml:"chance" json:"chance"`
	IntensitySlope float64 `yaml:"intensitySlope,omitempty" json:"intensitySlope,omitempty"`
	Amount         int64   `yaml:"amount" json:"amount"`
}

// Upgrade trades currency for a timed modifier.
type Upgrade struct {
	ID         string `yaml:"id" json:"id"`
	Currency   string `yaml:"currency" json:"currency"`
	Cost       int64  `yaml:"cost" json:"cost"`
	Kind       string `yaml:"kind" json:"kind"`
	Label      string `yaml:"label,omitempty" json:"label,omitempty"`
	DurationMs int64  `yaml:"durationMs" json:"durationMs"`
}

// BranchStep is one beat of a story branch.
type BranchStep struct {
	Title   string   `yaml:"title" json:"title"`
	Effects []string `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// SoftLine is narration shown on presses divisible by Every.
type SoftLine struct {
	Every int64  `yaml:"every" json:"every"`
	Title string `yaml:"title" json:"title"`
}

// Theme is the full content configuration of a story. A theme is read-only
// once handed to an engine and may be shared between sessions.
type Theme struct {
	Name               string                  `yaml:"name" json:"name"`
	ClickCurrency      string                  `yaml:"clickCurrency,omitempty" json:"clickCurrency,omitempty"`
	IntensityHalfPoint float64                 `yaml:"intensityHalfPoint,omitempty" json:"intensityHalfPoint,omitempty"`
	ReducedFactor      float64                 `yaml:"reducedFactor,omitempty" json:"reducedFactor,omitempty"`
	MinIntervalMs      int64                   `yaml:"minIntervalMs,omitempty" json:"minIntervalMs,omitempty"`
	StreakCap          int                     `yaml:"streakCap,omitempty" json:"streakCap,omitempty"`
	InitialTitle       string                  `yaml:"initialTitle,omitempty" json:"initialTitle,omitempty"`
	IdleLine           string                  `yaml:"idleLine,omitempty" json:"idleLine,omitempty"`
	DefaultAccent      string                  `yaml:"defaultAccent,omitempty" json:"defaultAccent,omitempty"`
	SoftLines          []SoftLine              `yaml:"softLines,omitempty" json:"softLines,omitempty"`
	Milestones         []milestone.Entry       `yaml:"milestones" json:"milestones"`
	Generators         []milestone.Generator   `yaml:"generators,omitempty" json:"generators,omitempty"`
	RareEvents         []Event                 `yaml:"rareEvents,omitempty" json:"rareEvents,omitempty"`
	AmbientEvents      []Event                 `yaml:"ambientEvents,omitempty" json:"ambientEvents,omitempty"`
	Drops              []Drop                  `yaml:"drops,omitempty" json:"drops,omitempty"`
	ModifierKinds      []ModifierKind          `yaml:"modifierKinds,omitempty" json:"modifierKinds,omitempty"`
	Upgrades           []Upgrade               `yaml:"upgrades,omitempty" json:"upgrades,omitempty"`
	Branches           map[string][]BranchStep `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// withDefaults returns a copy of t with zero-valued knobs filled in.
func (t Theme) withDefaults() Theme {
	if t.ClickCurrency == "" {
		t.ClickCurrency = DefaultClickCurrency
	}
	if t.IntensityHalfPoint <= 0 {
		t.IntensityHalfPoint = DefaultIntensityHalfPoint
	}
	if t.ReducedFactor <= 0 {
		t.ReducedFactor = DefaultReducedFactor
	}
	if t.MinIntervalMs <= 0 {
		t.MinIntervalMs = DefaultMinIntervalMs
	}
	if t.StreakCap <= 0 {
		t.StreakCap = DefaultStreakCap
	}
	if t.InitialTitle == "" {
		t.InitialTitle = DefaultInitialTitle
	}
	if t.IdleLine == "" {
		t.IdleLine = DefaultIdleLine
	}
	return t
}

// Intensity maps a click count onto [0, 1). It never decreases as count grows.
func (t Theme) Intensity(count int64) float64 {
	if count <= 0 {
		return 0
	}
	half := t.IntensityHalfPoint
	if half <= 0 {
		half = DefaultIntensityHalfPoint
	}
	c := float64(count)
	return c / (c + half)
}
