// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package milestone holds the ordered, immutable table of story beats keyed
// by click count.
package milestone

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Grant is a timed modifier handed out when a milestone fires.
type Grant struct {
	Kind       string `yaml:"kind" json:"kind"`
	Label      string `yaml:"label" json:"label"`
	DurationMs int64  `yaml:"durationMs" json:"durationMs"`
}

// Entry is a single milestone. Maps and slices are shared with the table
// and must not be modified by callers.
type Entry struct {
	At       int64            `yaml:"at" json:"at"`
	Tag      string           `yaml:"tag" json:"tag"`
	Title    string           `yaml:"title,omitempty" json:"title,omitempty"`
	Rewards  map[string]int64 `yaml:"rewards,omitempty" json:"rewards,omitempty"`
	Unlocks  []string         `yaml:"unlocks,omitempty" json:"unlocks,omitempty"`
	Effects  []string         `yaml:"effects,omitempty" json:"effects,omitempty"`
	Accent   string           `yaml:"accent,omitempty" json:"accent,omitempty"`
	Modifier *Grant           `yaml:"modifier,omitempty" json:"modifier,omitempty"`
	Branches []string         `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// Table is sorted ascending by At with at most one entry per count.
type Table struct {
	entries []Entry
	index   map[int64]int
}

// NewTable builds a table from hand-authored entries plus procedurally
// generated ones. Hand-authored entries claim their slot first; when two of
// them share a count the later one wins. Generated entries never overwrite a
// taken slot and move forward to the next free count instead.
func NewTable(literal []Entry, generators []Generator, seed uint32) *Table {
	slots := make(map[int64]Entry, len(literal))

	for _, e := range literal {
		if e.At < 1 {
			logrus.Warnf("dropping milestone %q with non-positive count %d", e.Tag, e.At)
			continue
		}
		if prev, exists := slots[e.At]; exists {
			logrus.Warnf("milestone %q replaces %q at count %d", e.Tag, prev.Tag, e.At)
		}
		slots[e.At] = e
	}

	for _, e := range generate(generators, seed, slots) {
		slots[e.At] = e
	}

	entries := make([]Entry, 0, len(slots))
	for _, e := range slots {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].At < entries[j].At
	})

	index := make(map[int64]int, len(entries))
	for i, e := range entries {
		index[e.At] = i
	}

	return &Table{entries: entries, index: index}
}

// Lookup returns the entry at exactly count.
func (t *Table) Lookup(count int64) (Entry, bool) {
	i, ok := t.index[count]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// EntriesBetween returns, in ascending order, every entry with
// fromExclusive < At <= toInclusive.
func (t *Table) EntriesBetween(fromExclusive, toInclusive int64) []Entry {
	if toInclusive <= fromExclusive {
		return nil
	}
	lo := t.IndexAfter(fromExclusive)
	hi := t.IndexAfter(toInclusive)
	if lo >= hi {
		return nil
	}

	out := make([]Entry, hi-lo)
	copy(out, t.entries[lo:hi])
	return out
}

// IndexAfter returns the index of the first entry with At > count.
func (t *Table) IndexAfter(count int64) int {
	return sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].At > count
	})
}

// At returns the entry at position i.
func (t *Table) At(i int) Entry {
	return t.entries[i]
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the ordered entries.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the latest entry with At <= count.
func (t *Table) Last(count int64) (Entry, bool) {
	i := t.IndexAfter(count)
	if i == 0 {
		return Entry{}, false
	}
	return t.entries[i-1], true
}
