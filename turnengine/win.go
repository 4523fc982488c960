package turnengine

import (
	"mahjong/evaluator"
	"mahjong/melds"
	"mahjong/shanten"
	"mahjong/state"
	"mahjong/tiles"
)

// winContext carries the situational flags a win evaluation needs beyond
// the hand and melds themselves — gathered by each call site (draw-phase
// tsumo check, post-discard ron check, chankan) rather than threaded
// through every function signature.
type winContext struct {
	IsTsumo   bool
	IsRinshan bool
	IsChankan bool
	IsHaitei  bool
	IsHoutei  bool
	IsTenhou  bool
	IsChiihou bool
	IsRenhou  bool
}

// evaluateWin builds the evaluator's closedTiles/HandConfig from round state
// and delegates to e.Evaluator. winTile must already be the last tile of
// closedTiles (for tsumo, player.Tiles already ends with it; for ron the
// caller passes a temporarily-extended slice).
func (e *Engine) evaluateWin(g *state.GameState, seat int, closedTiles []tiles.ID, winTile tiles.ID, ctx winContext) (evaluator.Result, error) {
	round := g.Round
	player := round.Players[seat]
	settings := g.Settings

	var doraTypes []tiles.Type
	for _, ind := range round.Wall.Dead.RevealedDoraIndicators() {
		doraTypes = append(doraTypes, tiles.DoraNext(ind.Type34()))
	}

	var uraTypes []tiles.Type
	if player.IsRiichi && settings.HasUradora {
		for _, ind := range round.Wall.Dead.RevealedUraDoraIndicators() {
			uraTypes = append(uraTypes, tiles.DoraNext(ind.Type34()))
		}
	}

	cfg := evaluator.HandConfig{
		IsTsumo:        ctx.IsTsumo,
		IsRiichi:       player.IsRiichi,
		IsIppatsu:      player.IsIppatsu,
		IsDaburuRiichi: player.IsDaburi,
		IsRinshan:      ctx.IsRinshan,
		IsChankan:      ctx.IsChankan,
		IsHaitei:       ctx.IsHaitei,
		IsHoutei:       ctx.IsHoutei,
		IsTenhou:       ctx.IsTenhou,
		IsChiihou:      ctx.IsChiihou,
		IsRenhou:       ctx.IsRenhou,
		PlayerWind:     state.SeatToWind(seat, round.DealerSeat),
		RoundWind:      roundWindType(round.RoundWind),
		Rules:          evaluator.RulesFrom(settings),
	}

	return e.Evaluator.Evaluate(closedTiles, winTile, player.Melds, doraTypes, uraTypes, cfg)
}

func roundWindType(w state.RoundWind) tiles.Type {
	switch w {
	case state.East:
		return tiles.East
	case state.South:
		return tiles.South
	case state.West:
		return tiles.West
	default:
		return tiles.East
	}
}

// canDeclareTsumo reports whether the drawing player's current hand
// (closed tiles, last one just drawn) is a winning hand with ≥1 yaku.
func (e *Engine) canDeclareTsumo(g *state.GameState, seat int) bool {
	round := g.Round
	player := round.Players[seat]
	if len(player.Tiles) == 0 {
		return false
	}
	winTile := player.Tiles[len(player.Tiles)-1]
	ctx := winContext{
		IsTsumo:   true,
		IsRinshan: player.IsRinshan,
		IsHaitei:  round.Wall.Remaining() == 0,
		IsTenhou:  round.DealerSeat == seat && isFirstUninterruptedDraw(round, seat),
		IsChiihou: round.DealerSeat != seat && isFirstUninterruptedDraw(round, seat),
	}
	_, err := e.evaluateWin(g, seat, player.Tiles, winTile, ctx)
	return err == nil
}

// canCallRon reports whether seat can ron on tileID discarded by discarder,
// gated by effective furiten.
func (e *Engine) canCallRon(g *state.GameState, seat int, tileID tiles.ID, discarderSeat int, isChankan bool) bool {
	round := g.Round
	player := round.Players[seat]
	if e.isEffectiveFuriten(g, seat) {
		return false
	}
	closedTiles := append(append([]tiles.ID(nil), player.Tiles...), tileID)
	ctx := winContext{
		IsTsumo:   false,
		IsChankan: isChankan,
		IsHoutei:  !isChankan && round.Wall.Remaining() == 0,
		IsRenhou:  round.DealerSeat != seat && isFirstGoAroundRon(round),
	}
	_, err := e.evaluateWin(g, seat, closedTiles, tileID, ctx)
	return err == nil
}

// calculateRonValue re-runs the same evaluation canCallRon validated,
// returning the actual Result for scoring.
func (e *Engine) calculateRonValue(g *state.GameState, seat int, tileID tiles.ID, discarderSeat int, isChankan bool) (evaluator.Result, error) {
	round := g.Round
	player := round.Players[seat]
	closedTiles := append(append([]tiles.ID(nil), player.Tiles...), tileID)
	ctx := winContext{
		IsChankan: isChankan,
		IsHoutei:  !isChankan && round.Wall.Remaining() == 0,
		IsRenhou:  round.DealerSeat != seat && isFirstGoAroundRon(round),
	}
	return e.evaluateWin(g, seat, closedTiles, tileID, ctx)
}

// isChankanPossible returns every seat that can ron the tile a player is
// attempting to add-kan (chankan robbery), excluding the declarer.
func (e *Engine) isChankanPossible(g *state.GameState, declarerSeat int, tileID tiles.ID) []int {
	var seats []int
	for s := 0; s < 4; s++ {
		if s == declarerSeat {
			continue
		}
		if e.canCallRon(g, s, tileID, declarerSeat, true) {
			seats = append(seats, s)
		}
	}
	return seats
}

// canCallKyuushuKyuuhai reports nine-terminals eligibility per §4.2/§4.8:
// the declarer's first uninterrupted turn, no prior calls, and ≥9 distinct
// terminal/honor types across the 14-tile hand.
func (e *Engine) canCallKyuushuKyuuhai(g *state.GameState, seat int) bool {
	round := g.Round
	if !g.Settings.HasKyuushuKyuuhai {
		return false
	}
	if !isFirstUninterruptedDraw(round, seat) {
		return false
	}
	player := round.Players[seat]
	seen := map[tiles.Type]bool{}
	for _, id := range player.Tiles {
		t := id.Type34()
		if t.IsTerminalOrHonor() {
			seen[t] = true
		}
	}
	return len(seen) >= 9
}

// possibleClosedKans returns every 34-type the player can ankan: four
// copies in hand, and — if in riichi — the kan must preserve the waiting
// set and not itself be a waited-on tile.
func (e *Engine) possibleClosedKans(g *state.GameState, seat int) []tiles.Type {
	round := g.Round
	if round.Wall.Remaining() < g.Settings.MinWallForKan || round.TotalKans() >= g.Settings.MaxKansPerRound {
		return nil
	}
	player := round.Players[seat]
	counts := tiles.ToHand34(player.Tiles)

	var out []tiles.Type
	for t := tiles.Type(0); t < tiles.Type(tiles.NumTypes); t++ {
		if counts[t] != 4 {
			continue
		}
		if !player.IsRiichi {
			out = append(out, t)
			continue
		}
		if riichiKanPreservesWait(e, counts, t) {
			out = append(out, t)
		}
	}
	return out
}

// riichiKanPreservesWait implements §4.5's closed-kan-during-riichi gate:
// the kan tile must not itself be a wait, and the waiting set computed on
// the 10-tile remainder (the hand minus the kanned type, as 3 sets + wait)
// must equal the original 13-tile waiting set.
func riichiKanPreservesWait(e *Engine, counts tiles.Hand34, kanType tiles.Type) bool {
	before := counts
	before[kanType] -= 1 // the 14th (just-drawn) copy removed first to get the 13-tile shape
	beforeWaits := shanten.WaitingTiles(before, 0)

	isOwnWait := false
	for _, w := range beforeWaits {
		if w == kanType {
			isOwnWait = true
			break
		}
	}
	if isOwnWait {
		return false
	}

	after := counts
	after[kanType] = 0
	afterWaits := shanten.WaitingTiles(after, 1)

	if len(afterWaits) != len(beforeWaits) {
		return false
	}
	seen := map[tiles.Type]bool{}
	for _, w := range beforeWaits {
		seen[w] = true
	}
	for _, w := range afterWaits {
		if !seen[w] {
			return false
		}
	}
	return true
}

// possibleAddedKans returns every 34-type with an existing pon where the
// player also holds the 4th tile, ineligible while in riichi.
func (e *Engine) possibleAddedKans(g *state.GameState, seat int) []tiles.Type {
	round := g.Round
	player := round.Players[seat]
	if player.IsRiichi {
		return nil
	}
	if round.Wall.Remaining() < g.Settings.MinWallForKan || round.TotalKans() >= g.Settings.MaxKansPerRound {
		return nil
	}
	var out []tiles.Type
	for _, m := range player.Melds {
		if m.Kind != melds.Pon {
			continue
		}
		t := m.Type34()
		if player.CountType34(t) >= 1 {
			out = append(out, t)
		}
	}
	return out
}

// canDeclareRiichi reports the four §4.2 conditions: closed hand, wall ≥
// min_wall_for_riichi, score ≥ riichi_cost, and tenpai on the 13-tile
// discard-pending shape.
func (e *Engine) canDeclareRiichi(g *state.GameState, seat int) bool {
	round := g.Round
	player := round.Players[seat]
	settings := g.Settings

	if player.IsRiichi || player.IsOpen() {
		return false
	}
	if round.Wall.Remaining() < settings.MinWallForRiichi {
		return false
	}
	if player.Score < settings.RiichiCost {
		return false
	}
	if len(player.Tiles) == 0 {
		return false
	}
	// Any single discard from the current (14-tile) hand must leave tenpai.
	for i := range player.Tiles {
		trial := append(append([]tiles.ID(nil), player.Tiles[:i]...), player.Tiles[i+1:]...)
		if e.isTenpai(tiles.ToHand34(trial), 0) {
			return true
		}
	}
	return false
}
