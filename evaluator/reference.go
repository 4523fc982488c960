package evaluator

import (
	"mahjong/melds"
	"mahjong/tiles"
)

// Reference is the module's conformant HandEvaluator implementation: a
// from-scratch enumeration over the three winning shapes (standard,
// chiitoitsu, kokushi musou), scored against every situational and
// optional-rule flag HandConfig carries. Spec §6 treats this boundary as
// pluggable and never-introspected; Reference exists so the rest of the
// engine has something real to call while that boundary stays swappable.
type Reference struct{}

var _ HandEvaluator = Reference{}

type candidate struct {
	yaku         []YakuHan
	han          int
	fu           int
	isYakuman    bool
	yakumanCount int
}

func (Reference) Evaluate(
	closedTiles []tiles.ID,
	winTile tiles.ID,
	ms []melds.Meld,
	doraIndicators []tiles.Type,
	uraDoraIndicators []tiles.Type,
	cfg HandConfig,
) (Result, error) {
	counts := tiles.ToHand34(closedTiles)
	winType := winTile.Type34()
	isOpen := false
	for _, m := range ms {
		if m.Kind.IsOpen() {
			isOpen = true
		}
	}

	var candidates []candidate

	if len(ms) == 0 {
		if c, ok := evaluateKokushi(counts, winType, cfg); ok {
			candidates = append(candidates, c)
		}
		if c, ok := evaluateChiitoitsu(counts, winType, closedTiles, doraIndicators, uraDoraIndicators, cfg); ok {
			candidates = append(candidates, c)
		}
	}

	shapeFound := false
	neededSets := 4 - len(ms)
	if neededSets >= 0 {
		meldGroups := make([]group, len(ms))
		for i, m := range ms {
			meldGroups[i] = meldToGroup(m)
		}
		for _, decomp := range decomposeStandard(counts, neededSets) {
			shapeFound = true
			full :=append(append([]group(nil), decomp...), meldGroups...)
			for i, g := range decomp {
				if !groupContains(g, winType) {
					continue
				}
				shape := handShape{
					Groups:        full,
					WinGroupIndex: i,
					WinType:       winType,
					IsOpen:        isOpen,
					IsTsumo:       cfg.IsTsumo,
				}
				yaku, isYakuman, yakumanCount := evaluateYaku(shape, cfg)
				if len(yaku) == 0 {
					continue
				}
				han := 0
				for _, y := range yaku {
					han += y.Han
				}
				isPinfu := false
				for _, y := range yaku {
					if y.Name == "pinfu" {
						isPinfu = true
					}
				}
				fu := computeFu(shape, cfg, isPinfu)
				if !isYakuman {
					han += doraHan(closedTiles, ms, doraIndicators, uraDoraIndicators, cfg)
				}
				candidates = append(candidates, candidate{
					yaku: yaku, han: han, fu: fu,
					isYakuman: isYakuman, yakumanCount: yakumanCount,
				})
			}
		}
		if pure, ok := chuurenPoutou(counts, winType, isOpen); ok {
			count := 1
			if pure && cfg.Rules.HasDoubleYakuman {
				count = 2
			}
			candidates = append(candidates, candidate{
				yaku:         []YakuHan{{Name: "chuuren_poutou", Han: 0}},
				isYakuman:    true,
				yakumanCount: count,
			})
		}
	}

	best, ok := bestCandidate(candidates)
	if !ok {
		if len(candidates) == 0 && !shapeFound {
			return Result{}, InvalidHandError{}
		}
		return Result{}, NoYakuError{}
	}

	isDealer := cfg.PlayerWind == tiles.East
	base := basePoints(best.han, best.fu, best.yakumanCount, cfg.Rules)
	main, additional := costs(base, isDealer, cfg.IsTsumo)

	return Result{
		Han:            best.han,
		Fu:             best.fu,
		IsYakuman:      best.isYakuman,
		YakumanCount:   best.yakumanCount,
		CostMain:       main,
		CostAdditional: additional,
		Yaku:           best.yaku,
	}, nil
}

func groupContains(g group, t tiles.Type) bool {
	if g.Kind == kindSequence {
		return t >= g.Tile && t <= g.Tile+2
	}
	return g.Tile == t
}

func doraHan(closedTiles []tiles.ID, ms []melds.Meld, doraIndicators, uraDoraIndicators []tiles.Type, cfg HandConfig) int {
	n := countIndicatorDora(closedTiles, ms, doraIndicators)
	n += countIndicatorDora(closedTiles, ms, uraDoraIndicators)
	if cfg.Rules.HasAkadora {
		n += countAkadora(closedTiles, ms)
	}
	return n
}

func bestCandidate(cands []candidate) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range cands {
		if !found {
			best, found = c, true
			continue
		}
		if better(c, best) {
			best = c
		}
	}
	return best, found
}

func better(a, b candidate) bool {
	if a.isYakuman != b.isYakuman {
		return a.isYakuman
	}
	if a.isYakuman {
		return a.yakumanCount > b.yakumanCount
	}
	if a.han != b.han {
		return a.han > b.han
	}
	return a.fu > b.fu
}

func evaluateKokushi(counts tiles.Hand34, winType tiles.Type, cfg HandConfig) (candidate, bool) {
	kinds, hasPair := 0, false
	for _, t := range yaochuuTypesEval {
		if counts[t] >= 1 {
			kinds++
		}
		if counts[t] >= 2 {
			hasPair = true
		}
	}
	if kinds != 13 || !hasPair {
		return candidate{}, false
	}
	before := counts
	before[winType]--
	thirteenSided := true
	for _, t := range yaochuuTypesEval {
		if before[t] < 1 {
			thirteenSided = false
			break
		}
	}
	count := 1
	if thirteenSided && cfg.Rules.HasDoubleYakuman {
		count = 2
	}
	return candidate{
		yaku:         []YakuHan{{Name: "kokushi_musou", Han: 0}},
		isYakuman:    true,
		yakumanCount: count,
	}, true
}

var yaochuuTypesEval = []tiles.Type{
	tiles.Man1, tiles.Man9, tiles.Pin1, tiles.Pin9, tiles.Sou1, tiles.Sou9,
	tiles.East, tiles.South, tiles.West, tiles.North, tiles.Haku, tiles.Hatsu, tiles.Chun,
}

func evaluateChiitoitsu(
	counts tiles.Hand34,
	winType tiles.Type,
	closedTiles []tiles.ID,
	doraIndicators, uraDoraIndicators []tiles.Type,
	cfg HandConfig,
) (candidate, bool) {
	distinct, total := 0, 0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if c != 2 {
			return candidate{}, false
		}
		distinct++
		total += c
	}
	if distinct != 7 || total != 14 {
		return candidate{}, false
	}

	var yaku []YakuHan
	add := func(name string, han int) { yaku = append(yaku, YakuHan{Name: name, Han: han}) }
	add("chiitoitsu", 2)

	if cfg.IsDaburuRiichi {
		add("double_riichi", 2)
	} else if cfg.IsRiichi {
		add("riichi", 1)
	}
	if cfg.IsIppatsu {
		add("ippatsu", 1)
	}
	if cfg.IsTsumo {
		add("menzen_tsumo", 1)
	}
	if cfg.IsHaitei && cfg.IsTsumo {
		add("haitei_raoyue", 1)
	}
	if cfg.IsHoutei && !cfg.IsTsumo {
		add("houtei_raoyui", 1)
	}

	allSimple, allTermHonor, suit, singleSuit := true, true, -1, true
	for t, c := range counts {
		if c == 0 {
			continue
		}
		ty := tiles.Type(t)
		if ty.IsTerminalOrHonor() {
			allSimple = false
		} else {
			allTermHonor = false
		}
		if !ty.IsHonor() {
			if suit == -1 {
				suit = ty.Suit()
			} else if suit != ty.Suit() {
				singleSuit = false
			}
		}
	}
	if allSimple {
		add("tanyao", 1)
	}
	if allTermHonor {
		add("honroto", 2)
	}
	if singleSuit && suit != -1 {
		add("honitsu", 3)
	}

	han := 0
	for _, y := range yaku {
		han += y.Han
	}
	han += doraHan(closedTiles, nil, doraIndicators, uraDoraIndicators, cfg)
	return candidate{yaku: yaku, han: han, fu: ChiitoitsuFu}, true
}
