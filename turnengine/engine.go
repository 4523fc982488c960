// Package turnengine drives the turn loop: draw, discard, call resolution,
// meld formation, abortive draws, and exhaustive-draw/nagashi-mangan
// settlement. It is the single place that advances a RoundState within a
// round boundary; progression takes over once a RoundResult lands.
//
// Every exported handler is a pure function from (*state.GameState, input)
// to (*state.GameState, []events.Event) — the same "returns events, never
// emits them" shape the spec's concurrency model requires of the core.
// Grounded on src/game/logic/turn.py (process_draw_phase,
// process_discard_phase, process_meld_call, process_ron_call,
// process_tsumo_call) and backend/game/logic/call_resolution.py
// (resolve_call_prompt, pick_best_meld_response).
package turnengine

import (
	"mahjong/cache"
	"mahjong/evaluator"
	"mahjong/shanten"
	"mahjong/state"
	"mahjong/tiles"
)

// Engine bundles the collaborators every handler needs: the pluggable hand
// evaluator and the shanten memoization cache. Stateless beyond these
// handles — all game state lives in the *state.GameState passed in.
type Engine struct {
	Evaluator evaluator.HandEvaluator
	Shanten   *cache.ShantenCache
}

// New builds an Engine. A nil cache is valid (shanten falls back to
// uncached computation, costly only at draw/discard time where it already
// runs once per seat per turn).
func New(ev evaluator.HandEvaluator, shantenCache *cache.ShantenCache) *Engine {
	return &Engine{Evaluator: ev, Shanten: shantenCache}
}

// shanten computes shanten, consulting the engine's cache when one is wired.
func (e *Engine) shanten(counts tiles.Hand34, formedSets int) int {
	if e.Shanten == nil {
		return shanten.Shanten(counts, formedSets)
	}
	return shanten.Cached(e.Shanten, counts, formedSets)
}

// isTenpai reports tenpai via the engine's (possibly cached) shanten.
func (e *Engine) isTenpai(counts tiles.Hand34, formedSets int) bool {
	return e.shanten(counts, formedSets) == 0
}

// InvalidActionError reports an action attempted outside its legal window
// (e.g. a discard when it isn't that seat's turn, a call response from a
// seat not listed on the pending prompt).
type InvalidActionError struct {
	Reason string
}

func (err *InvalidActionError) Error() string { return "turnengine: " + err.Reason }

// seatHasMadeAnyCall reports whether any meld (open or closed kan) has been
// formed this round, the "no prior calls" gate shared by kyuushu kyuuhai,
// tenhou, chiihou, and renhou eligibility.
func seatHasMadeAnyCall(round *state.RoundState) bool {
	if len(round.OpenedSeats) > 0 {
		return true
	}
	return round.TotalKans() > 0
}

// isFirstUninterruptedDraw reports whether this is the named seat's very
// first draw of the round (no discard has yet been made by any seat ahead
// of it in turn order) and no calls have interrupted the go-around.
// Underlies tenhou/chiihou/kyuushu-kyuuhai eligibility.
func isFirstUninterruptedDraw(round *state.RoundState, seat int) bool {
	if seatHasMadeAnyCall(round) {
		return false
	}
	offset := state.CounterClockwiseDistance(round.DealerSeat, seat)
	return round.TurnCount == offset
}

// isFirstGoAroundRon reports whether a ron on this discard still falls
// within the first uninterrupted go-around (renhou eligibility): fewer
// than four discards have been made this round and no calls occurred.
func isFirstGoAroundRon(round *state.RoundState) bool {
	if seatHasMadeAnyCall(round) {
		return false
	}
	return round.TurnCount < 4
}
