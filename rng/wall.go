package rng

import (
	"fmt"

	"mahjong/tiles"
)

// BoundedUint64 draws a uniform value in [0, bound) from pcg, using
// rejection sampling against the largest multiple of bound under 2^64 to
// avoid modulo bias.
func BoundedUint64(pcg *PCG64DXSM, bound uint64) uint64 {
	if bound == 0 {
		panic("rng: bound must be positive")
	}
	if bound == 1 {
		return 0
	}
	// threshold is 2^64 mod bound; values below it would bias the low
	// buckets, so they're rejected and redrawn.
	threshold := -bound % bound
	for {
		v := pcg.NextUint64()
		if v >= threshold {
			return v % bound
		}
	}
}

// FisherYatesShuffle returns a shuffled copy of ids, consuming pcg.
func FisherYatesShuffle(ids []tiles.ID, pcg *PCG64DXSM) []tiles.ID {
	out := append([]tiles.ID(nil), ids...)
	for i := len(out) - 1; i > 0; i-- {
		j := BoundedUint64(pcg, uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RollDie draws one die roll (1-6) from pcg.
func RollDie(pcg *PCG64DXSM) int {
	return int(BoundedUint64(pcg, 6)) + 1
}

// RollDice draws a pair of dice (each 1-6) from pcg, in order.
func RollDice(pcg *PCG64DXSM) (int, int) {
	return RollDie(pcg), RollDie(pcg)
}

// GenerateShuffledWallAndDice derives round r's stream from seed and
// produces the shuffled 136-tile permutation plus the two dice rolled
// after the shuffle (used for any round-local dice convention; the
// first-dealer roll is a separate domain-separated stream, see
// DetermineFirstDealer).
func GenerateShuffledWallAndDice(seedHex string, round int64) ([]tiles.ID, [2]int) {
	pcg := DeriveRoundPCG(seedHex, round)
	ordered := make([]tiles.ID, tiles.NumTiles)
	for i := range ordered {
		ordered[i] = tiles.ID(i)
	}
	shuffled := FisherYatesShuffle(ordered, pcg)
	d1, d2 := RollDice(pcg)
	return shuffled, [2]int{d1, d2}
}

// DetermineFirstDealer rolls dice twice against a seed-derived stream and
// resolves the canonical two-roll procedure:
//
//	temp_dealer = (sum(first_dice) - 1) mod 4
//	dealer      = (temp_dealer + sum(second_dice) - 1) mod 4
func DetermineFirstDealer(seedHex string) (dealer int, firstDice, secondDice [2]int) {
	pcg := deriveDomainPCG(seedHex, dealerDomainTag)
	firstDice = [2]int{RollDie(pcg), RollDie(pcg)}
	tempDealer := (firstDice[0] + firstDice[1] - 1) % 4
	secondDice = [2]int{RollDie(pcg), RollDie(pcg)}
	dealer = (tempDealer + secondDice[0] + secondDice[1] - 1) % 4
	return dealer, firstDice, secondDice
}

// SeatRNG wraps the dedicated seat-shuffling stream exposed for lobby fill.
type SeatRNG struct{ pcg *PCG64DXSM }

// NewSeatRNG builds the seat-shuffle stream for a seed (or an
// entropy-seeded one when seedHex is empty, matching a lobby created
// without a fixed seed).
func NewSeatRNG(seedHex string) *SeatRNG {
	if seedHex == "" {
		seedHex = GenerateSeed()
	}
	return &SeatRNG{pcg: CreateSeatRNG(seedHex)}
}

// Shuffle returns a permutation of [0, n) drawn from the seat stream.
func (s *SeatRNG) Shuffle(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(BoundedUint64(s.pcg, uint64(i+1)))
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// ReverseSeatOrder undoes a shuffle returned by Shuffle: given names in
// shuffled seat order, returns them back in lobby-submission order. The
// replay loader does not call it; it takes seat order as recorded in the
// game_started record.
func ReverseSeatOrder(shuffledNames []string, perm []int) ([]string, error) {
	if len(shuffledNames) != len(perm) {
		return nil, fmt.Errorf("rng: seat order length mismatch: %d names, %d perm entries", len(shuffledNames), len(perm))
	}
	original := make([]string, len(perm))
	for originalIdx, shuffledIdx := range perm {
		original[originalIdx] = shuffledNames[shuffledIdx]
	}
	return original, nil
}
