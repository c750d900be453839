// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AccelByte/extend-button-story/pkg/milestone"
	"github.com/AccelByte/extend-button-story/pkg/progression"
)

const sampleTheme = `
name: sample
clickCurrency: ${SAMPLE_CURRENCY:taps}
minIntervalMs: 25
modifierKinds:
  - kind: doubler
    op: mul
    value: 2
milestones:
  - at: 3
    tag: milestone:three
    title: Three.
    rewards:
      echoes: 2
    modifier:
      kind: doubler
      durationMs: 5000
  - at: 1
    tag: milestone:one
    branches: [left]
branches:
  left:
    - title: Left it is.
rareEvents:
  - tag: rareEvent:blink
    chance: 0.5
drops:
  - currency: echoes
    chance: 0.1
    intensitySlope: 0.2
    amount: 1
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte(sampleTheme), 0o600); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if th.Name != "sample" {
		t.Errorf("Name = %q, expected sample", th.Name)
	}
	if th.ClickCurrency != "taps" {
		t.Errorf("ClickCurrency = %q, expected default taps", th.ClickCurrency)
	}
	if th.MinIntervalMs != 25 {
		t.Errorf("MinIntervalMs = %d, expected 25", th.MinIntervalMs)
	}
	if len(th.Milestones) != 2 || th.Milestones[0].Modifier == nil || th.Milestones[0].Modifier.DurationMs != 5000 {
		t.Errorf("Milestones = %+v", th.Milestones)
	}
	if th.Milestones[0].Rewards["echoes"] != 2 {
		t.Errorf("rewards = %v", th.Milestones[0].Rewards)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("SAMPLE_CURRENCY", "beats")

	th, err := Parse([]byte(sampleTheme))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if th.ClickCurrency != "beats" {
		t.Errorf("ClickCurrency = %q, expected beats", th.ClickCurrency)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("milestones: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		theme   progression.Theme
		wantErr string
	}{
		{
			name:  "valid",
			theme: progression.Theme{Milestones: []milestone.Entry{{At: 1, Tag: "a"}}},
		},
		{
			name:    "chance above one",
			theme:   progression.Theme{RareEvents: []progression.Event{{Tag: "r", Chance: 1.5}}},
			wantErr: "chance 1.5",
		},
		{
			name:    "negative slope",
			theme:   progression.Theme{Drops: []progression.Drop{{Currency: "echoes", Chance: 0.1, IntensitySlope: -1}}},
			wantErr: "negative intensity slope",
		},
		{
			name:    "unknown op",
			theme:   progression.Theme{ModifierKinds: []progression.ModifierKind{{Kind: "k", Op: "pow"}}},
			wantErr: "unknown op",
		},
		{
			name: "undeclared kind in upgrade",
			theme: progression.Theme{Upgrades: []progression.Upgrade{
				{ID: "u", Currency: "clicks", Cost: 1, Kind: "ghost", DurationMs: 10},
			}},
			wantErr: "undeclared modifier kind ghost",
		},
		{
			name:    "unknown branch",
			theme:   progression.Theme{Milestones: []milestone.Entry{{At: 1, Tag: "a", Branches: []string{"nowhere"}}}},
			wantErr: "unknown branch nowhere",
		},
		{
			name:    "bad generator",
			theme:   progression.Theme{Generators: []milestone.Generator{{Tag: "g", Start: 0, Ratio: 2, Count: 3}}},
			wantErr: "generator g",
		},
		{
			name:    "duplicate kinds",
			theme:   progression.Theme{ModifierKinds: []progression.ModifierKind{{Kind: "k", Op: "add"}, {Kind: "k", Op: "add"}}},
			wantErr: "duplicate modifier kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.theme)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, expected to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	th := progression.Theme{
		ReducedFactor: 2,
		RareEvents:    []progression.Event{{Tag: "r", Chance: -1}},
		Drops:         []progression.Drop{{Chance: 0.5}},
	}

	err := Validate(&th)
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("Validate() error = %v, expected a joined error", err)
	}
	if got := len(joined.Unwrap()); got != 3 {
		t.Errorf("problems = %d, expected 3: %v", got, err)
	}

	wrapped := fmt.Errorf("invalid theme: %w", err)
	if !errors.Is(wrapped, joined.Unwrap()[0]) {
		t.Error("wrapped error does not expose individual problems")
	}
}

func TestDefault(t *testing.T) {
	th := Default()

	if err := Validate(th); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}

	e := progression.New(th, 1)
	for _, at := range []int64{1, 5, 12, 25, 50, 75, 100} {
		if _, ok := e.Table().Lookup(at); !ok {
			t.Errorf("default table missing milestone at %d", at)
		}
	}
	if e.Table().Len() <= 7 {
		t.Errorf("default table has %d entries, expected generated milestones too", e.Table().Len())
	}
}

func TestBuilder_BuildIsolation(t *testing.T) {
	b := NewBuilder("iso").Milestone(milestone.Entry{At: 1, Tag: "a"})
	first, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	b.Milestone(milestone.Entry{At: 2, Tag: "b"})
	if len(first.Milestones) != 1 {
		t.Errorf("built theme changed after builder reuse: %d milestones", len(first.Milestones))
	}
}

func TestBuilder_InvalidContent(t *testing.T) {
	_, err := NewBuilder("bad").
		Upgrade(progression.Upgrade{ID: "u", Currency: "c", Cost: 1, Kind: "missing", DurationMs: 1}).
		Build()
	if err == nil {
		t.Error("expected validation error")
	}
}
