// Package evaluator implements the pluggable hand-evaluator boundary:
// yaku/fu enumeration and point calculation sit behind a narrow interface
// the turn engine calls into and never introspects (spec explicitly keeps
// "the lowest-level yaku/fu enumeration" out of the engine core). This
// package supplies the interface plus one conformant reference
// implementation; any other implementation honoring the same contract
// drops in without touching the rest of the module.
package evaluator

import (
	"mahjong/config"
	"mahjong/melds"
	"mahjong/tiles"
)

// Rules mirrors the optional-rule flags the evaluator needs from
// config.Settings. Kept as its own small record (rather than taking
// config.Settings directly) so this package's contract stays narrow and
// doesn't pull in the rest of the settings surface the evaluator has no
// business reading (timers, uma, abortive-draw toggles).
type Rules struct {
	HasAkadora       bool
	HasKuitan        bool
	HasDoubleYakuman bool
	HasKazoeYakuman  bool
	HasKiriageMangan bool
	RenhouValue      config.RenhouValue
	FuForOpenPinfu   int
	FuForPinfuTsumo  int
}

// RulesFrom narrows a full Settings record to what the evaluator needs.
func RulesFrom(s config.Settings) Rules {
	return Rules{
		HasAkadora:       s.HasAkadora,
		HasKuitan:        s.HasKuitan,
		HasDoubleYakuman: s.HasDoubleYakuman,
		HasKazoeYakuman:  s.HasKazoeYakuman,
		HasKiriageMangan: s.HasKiriageMangan,
		RenhouValue:      s.RenhouValue,
		FuForOpenPinfu:   s.FuForOpenPinfu,
		FuForPinfuTsumo:  s.FuForPinfuTsumo,
	}
}

// HandConfig carries every situational flag the evaluator needs beyond the
// tiles themselves, per spec §4.6/§6.
type HandConfig struct {
	IsTsumo        bool
	IsRiichi       bool
	IsIppatsu      bool
	IsDaburuRiichi bool
	IsRinshan      bool
	IsChankan      bool
	IsHaitei       bool
	IsHoutei       bool
	IsTenhou       bool
	IsChiihou      bool
	IsRenhou       bool

	PlayerWind tiles.Type
	RoundWind  tiles.Type

	Rules Rules
}

// YakuHan is one matched yaku and the han it contributed.
type YakuHan struct {
	Name string
	Han  int
}

// Result is the evaluator's full verdict on a winning hand. CostMain is
// what the "main" payer owes (every non-dealer on a dealer win, the
// dealer alone on a non-dealer tsumo, or the discarder on a ron);
// CostAdditional is populated only for a non-dealer tsumo, where it is
// each of the other two non-dealers' smaller payment. The scoring package
// applies honba/riichi-stick/pao adjustments on top of these base values.
type Result struct {
	Han            int
	Fu             int
	IsYakuman      bool
	YakumanCount   int // 1 for a single yakuman, 2+ for double/combined yakuman
	CostMain       int
	CostAdditional int
	Yaku           []YakuHan
}

// NoYakuError reports a hand shape that is complete but scores no yaku
// (an illegal win attempt under every ruleset without some renhou-like
// situational award).
type NoYakuError struct{}

func (NoYakuError) Error() string { return "evaluator: hand has no yaku" }

// InvalidHandError reports a 14-tile (+melds) set that cannot decompose
// into any winning shape at all.
type InvalidHandError struct{}

func (InvalidHandError) Error() string { return "evaluator: not a winning hand" }

// HandEvaluator is the narrow boundary the turn engine calls through.
// closedTiles is the player's concealed tiles plus the winning tile (14
// minus 3*len(melds)); melds are the player's called/kan sets; the two
// dora slices are already resolved by the caller (ura only populated when
// the winner is in riichi and the rule is enabled).
type HandEvaluator interface {
	Evaluate(
		closedTiles []tiles.ID,
		winTile tiles.ID,
		ms []melds.Meld,
		doraIndicators []tiles.Type,
		uraDoraIndicators []tiles.Type,
		cfg HandConfig,
	) (Result, error)
}
