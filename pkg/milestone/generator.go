// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package milestone

import (
	"fmt"
	"math"
	"strings"

	"github.com/AccelByte/extend-button-story/pkg/rng"
)

// Generator describes a geometric series of milestones:
// at_i = floor(Start * Ratio^i) + jitter, for i in [0, Count).
type Generator struct {
	Tag     string           `yaml:"tag" json:"tag"` // fmt pattern, %d receives the count
	Title   string           `yaml:"title,omitempty" json:"title,omitempty"`
	Start   float64          `yaml:"start" json:"start"`
	Ratio   float64          `yaml:"ratio" json:"ratio"`
	Count   int              `yaml:"count" json:"count"`
	Jitter  int              `yaml:"jitter,omitempty" json:"jitter,omitempty"`
	Rewards map[string]int64 `yaml:"rewards,omitempty" json:"rewards,omitempty"`
	Effects []string         `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// maxGeneratedAt bounds generated slots. Larger values are not exactly
// representable as float64 and leave no room for jitter.
const maxGeneratedAt = 1 << 53

// generate expands generators in declaration order. taken holds the slots
// already claimed; it is not modified.
func generate(generators []Generator, seed uint32, taken map[int64]Entry) []Entry {
	if len(generators) == 0 {
		return nil
	}

	r := rng.New(seed)
	claimed := make(map[int64]bool, len(taken))
	for at := range taken {
		claimed[at] = true
	}

	var out []Entry
	for _, g := range generators {
		for i := 0; i < g.Count; i++ {
			v := math.Floor(g.Start * math.Pow(g.Ratio, float64(i)))
			if math.IsInf(v, 0) || math.IsNaN(v) || v > maxGeneratedAt {
				break
			}
			at := int64(v)
			if g.Jitter > 0 {
				at += int64(r.Intn(g.Jitter + 1))
			}
			if at < 1 {
				at = 1
			}
			for claimed[at] {
				at++
			}
			claimed[at] = true

			out = append(out, Entry{
				At:      at,
				Tag:     formatTag(g.Tag, at),
				Title:   g.Title,
				Rewards: g.Rewards,
				Effects: g.Effects,
			})
		}
	}

	return out
}

func formatTag(pattern string, at int64) string {
	if strings.Contains(pattern, "%d") {
		return fmt.Sprintf(pattern, at)
	}
	return fmt.Sprintf("%s:%d", pattern, at)
}
