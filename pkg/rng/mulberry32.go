// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rng provides the seeded random source used by the progression engine.
// The generator position is a single uint32 so it can be persisted next to the
// player state and resumed after a reload.
package rng

const (
	increment = 0x6D2B79F5
	floatDiv  = 1 << 32
)

// Source is the random stream consumed by the engine.
type Source interface {
	Float64() float64
	Intn(n int) int
	State() uint32
}

// Mulberry32 is a 32-bit counter based generator.
// It is not safe for concurrent use; each session owns its own instance.
type Mulberry32 struct {
	state uint32
}

// New returns a generator positioned at the start of the stream for seed.
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Resume returns a generator continuing from a previously persisted state.
func Resume(state uint32) *Mulberry32 {
	return &Mulberry32{state: state}
}

// Uint32 advances the stream and returns the next raw value.
func (m *Mulberry32) Uint32() uint32 {
	m.state += increment
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / floatDiv
}

// Intn returns a value in [0, n). n <= 0 returns 0 without advancing.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(m.Float64() * float64(n))
}

// State returns the current position for persistence.
func (m *Mulberry32) State() uint32 {
	return m.state
}
