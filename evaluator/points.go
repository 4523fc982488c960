package evaluator

// basePoints implements the standard riichi base-point table. count is the
// yakuman multiple (0 when han/fu drive the table instead).
func basePoints(han, fu, yakumanCount int, rules Rules) int {
	if yakumanCount > 0 {
		return 8000 * yakumanCount
	}
	if han >= 13 {
		if rules.HasKazoeYakuman {
			return 8000
		}
		han = 12 // fall through to sanbaiman if kazoe yakuman is disabled
	}
	switch {
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han >= 6:
		return 3000
	case han == 5:
		return 2000
	}
	base := fu << (2 + han)
	if base > 2000 {
		base = 2000
	}
	if rules.HasKiriageMangan && base >= 1920 {
		base = 2000
	}
	return base
}

func roundUp100(n int) int {
	if n%100 == 0 {
		return n
	}
	return (n/100 + 1) * 100
}

// costs computes (cost_main, cost_additional) for a win. Matches the
// scoring package's payment convention (itself grounded on
// backend/game/logic/scoring.py's _tsumo_payment_for_seat): cost_main is
// what the "main" payer owes — every non-dealer on a dealer tsumo, the
// dealer alone on a non-dealer tsumo, or the discarder on a ron — while
// cost_additional is only meaningful for a non-dealer tsumo, where it is
// each of the other two non-dealers' (smaller) payment.
func costs(base int, isDealer, isTsumo bool) (int, int) {
	if isTsumo {
		if isDealer {
			return roundUp100(base * 2), 0
		}
		return roundUp100(base * 2), roundUp100(base)
	}
	if isDealer {
		return roundUp100(base * 6), 0
	}
	return roundUp100(base * 4), 0
}
