// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written into every encoded snapshot.
const SchemaVersion = 2

// legacySchemaVersion is the first layout: narrative fields and the click
// count only, no currencies or random stream position. Snapshots written
// before the version field existed decode the same way.
const legacySchemaVersion = 1

// ErrMalformedState is returned by Decode for payloads that cannot be
// interpreted as a snapshot.
var ErrMalformedState = errors.New("malformed progression state")

type record struct {
	V              int              `json:"v"`
	Seed           uint32           `json:"seed"`
	RNGState       *uint32          `json:"rngState,omitempty"`
	ClickCount     int64            `json:"clickCount"`
	Streak         int              `json:"streak"`
	Currencies     map[string]int64 `json:"currencies,omitempty"`
	Modifiers      []Modifier       `json:"activeModifiers,omitempty"`
	LastEventIndex *int             `json:"lastEventIndex,omitempty"`
	LastPressAtMs  int64            `json:"lastPressAtEpochMs,omitempty"`
	HasPressed     bool             `json:"hasPressed,omitempty"`
	Unlocks        []string         `json:"unlocks,omitempty"`
	Title          string           `json:"title,omitempty"`
	Effects        []string         `json:"effects,omitempty"`
	Accent         string           `json:"accent,omitempty"`
	BranchID       string           `json:"branchId,omitempty"`
	BranchIndex    int              `json:"branchIndex,omitempty"`
}

// Encode serializes a full snapshot tagged with SchemaVersion.
func Encode(s *State) ([]byte, error) {
	rngState := s.RNGState
	lastEventIndex := s.LastEventIndex
	return json.Marshal(record{
		V:              SchemaVersion,
		Seed:           s.Seed,
		RNGState:       &rngState,
		ClickCount:     s.ClickCount,
		Streak:         s.Streak,
		Currencies:     s.Currencies,
		Modifiers:      s.Modifiers,
		LastEventIndex: &lastEventIndex,
		LastPressAtMs:  s.LastPressAtMs,
		HasPressed:     s.HasPressed,
		Unlocks:        s.Unlocks,
		Title:          s.Title,
		Effects:        s.Effects,
		Accent:         s.Accent,
		BranchID:       s.BranchID,
		BranchIndex:    s.BranchIndex,
	})
}

// Decode parses a snapshot written by Encode or by the legacy layout.
// Missing fields take their initial values. When the milestone cursor is
// absent LastEventIndex is set to -1 and Restore derives it from the click
// count.
func Decode(data []byte) (*State, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	switch rec.V {
	case SchemaVersion, legacySchemaVersion, 0:
	default:
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrMalformedState, rec.V)
	}

	if rec.ClickCount < 0 || rec.Streak < 0 || rec.BranchIndex < 0 {
		return nil, fmt.Errorf("%w: negative counter", ErrMalformedState)
	}

	s := &State{
		ClickCount:     rec.ClickCount,
		Streak:         rec.Streak,
		Currencies:     rec.Currencies,
		Modifiers:      rec.Modifiers,
		Seed:           rec.Seed,
		RNGState:       rec.Seed,
		LastEventIndex: -1,
		LastPressAtMs:  rec.LastPressAtMs,
		HasPressed:     rec.HasPressed,
		Unlocks:        rec.Unlocks,
		Title:          rec.Title,
		Effects:        rec.Effects,
		Accent:         rec.Accent,
		BranchID:       rec.BranchID,
		BranchIndex:    rec.BranchIndex,
	}
	if rec.RNGState != nil {
		s.RNGState = *rec.RNGState
	}
	if rec.LastEventIndex != nil {
		s.LastEventIndex = *rec.LastEventIndex
	}
	if s.Currencies == nil {
		s.Currencies = make(map[string]int64)
	}

	return s, nil
}
