package fantasy

import "unicode/utf16"

// Constants below are part of the output contract: changing any of them
// changes every synthetic leaderboard ever generated.
const (
	fnvOffset32     uint32 = 2166136261
	fnvPrime32      uint32 = 16777619
	mulberryStep    uint32 = 0x6D2B79F5
	mulberryDivisor        = 4294967296.0 // 2^32
)

// HashSeed derives a 32-bit seed from a string with FNV-1a over its UTF-16
// code units: XOR each unit into the accumulator, then multiply by the FNV
// prime with 32-bit wraparound.
func HashSeed(s string) uint32 {
	h := fnvOffset32
	for _, u := range utf16.Encode([]rune(s)) {
		h ^= uint32(u)
		h *= fnvPrime32
	}
	return h
}

// Mulberry32 is a single-word 32-bit generator. Each call to Next advances
// the state and depends on every earlier call, so a stream must be
// consumed in a fixed order and never reseeded midway.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 starts a stream at seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next returns the next value in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += mulberryStep
	a := m.state
	t := (a ^ a>>15) * (a | 1)
	t = (t + (t^t>>7)*(t|61)) ^ t
	return float64(t^t>>14) / mulberryDivisor
}

// Intn returns floor(Next()*n). It consumes exactly one draw.
func (m *Mulberry32) Intn(n int) int {
	return int(m.Next() * float64(n))
}
