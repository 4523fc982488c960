// Package rng implements the engine's sole source of randomness: a
// PCG64DXSM stream keyed by a 768-bit hex seed, with per-round substreams
// derived by domain-separated hashing so that round r's wall and dice never
// depend on rounds 0..r-1 having been consumed.
package rng

import "math/bits"

// pcgMultHi/pcgMultLo is the canonical 128-bit PCG LCG multiplier
// (0x2360ed051fc65da44385df649fccf645), split into two 64-bit halves.
const (
	pcgMultHi uint64 = 0x2360ed051fc65da4
	pcgMultLo uint64 = 0x4385df649fccf645

	// dxsmMultiplier is PCG64-DXSM's "cheap multiplier" applied to the high
	// 64 bits of the pre-advance state during output finalization.
	dxsmMultiplier uint64 = 0xda942042e4dd58b5
)

// PCG64DXSM is a 128-bit-state, 64-bit-output permuted congruential
// generator using the DXSM (double xorshift multiply) output function.
type PCG64DXSM struct {
	stateHi, stateLo uint64
	incHi, incLo     uint64
}

// NewPCG64DXSM constructs a generator from a raw 128-bit state and
// increment (increment's low bit is forced to 1, as PCG requires an odd
// increment for full period).
func NewPCG64DXSM(stateHi, stateLo, incHi, incLo uint64) *PCG64DXSM {
	return &PCG64DXSM{
		stateHi: stateHi,
		stateLo: stateLo,
		incHi:   incHi,
		incLo:   incLo | 1,
	}
}

// mul128 computes the low 128 bits of (aHi:aLo) * (bHi:bLo).
func mul128(aHi, aLo, bHi, bLo uint64) (hi, lo uint64) {
	hi, lo = bits.Mul64(aLo, bLo)
	hi += aHi*bLo + aLo*bHi
	return hi, lo
}

// add128 computes (aHi:aLo) + (bHi:bLo) mod 2^128.
func add128(aHi, aLo, bHi, bLo uint64) (hi, lo uint64) {
	var carry uint64
	lo, carry = bits.Add64(aLo, bLo, 0)
	hi, _ = bits.Add64(aHi, bHi, carry)
	return hi, lo
}

// outputDXSM derives the 64-bit output from the pre-advance state.
func outputDXSM(stateHi, stateLo uint64) uint64 {
	hi := stateHi
	lo := stateLo | 1
	hi ^= hi >> 32
	hi *= dxsmMultiplier
	hi ^= hi >> 48
	hi *= lo
	return hi
}

// NextUint64 advances the generator and returns the next 64-bit output.
func (p *PCG64DXSM) NextUint64() uint64 {
	out := outputDXSM(p.stateHi, p.stateLo)
	newHi, newLo := mul128(p.stateHi, p.stateLo, pcgMultHi, pcgMultLo)
	p.stateHi, p.stateLo = add128(newHi, newLo, p.incHi, p.incLo)
	return out
}
