// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package selector

// Seed hashes s into a 32-bit seed with a polynomial rolling hash
// (h = h*31 + c, wrapping at 32 bits). Runes outside the BMP are hashed
// as their UTF-16 surrogate pair so seeds agree with browser clients.
func Seed(s string) uint32 {
	var h uint32
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			h = h*31 + uint32(0xD800+(r>>10))
			h = h*31 + uint32(0xDC00+(r&0x3FF))
			continue
		}
		h = h*31 + uint32(r)
	}
	return h
}

// Mulberry32 is a small, fast 32-bit PRNG. The same seed always produces
// the same sequence. Not safe for concurrent use.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 returns a generator seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 returns the next value in the sequence.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns a value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		panic("selector: Intn called with non-positive n")
	}
	return int(m.Float64() * float64(n))
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap.
func (m *Mulberry32) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := m.Intn(i + 1)
		swap(i, j)
	}
}
