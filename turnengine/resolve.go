// Call-prompt resolution (§4.4): collects every pending seat's response,
// then applies ron-dominant priority (atamahane / capped multi-ron /
// triple-ron abort) ahead of the best-meld fallback, and chankan's rob-
// or-complete branch. Grounded on backend/game/logic/call_resolution.py's
// resolve_call_prompt/pick_best_meld_response.
package turnengine

import (
	"mahjong/events"
	"mahjong/scoring"
	"mahjong/state"
)

// RespondToPrompt records seat's answer to the round's pending prompt and,
// once every addressed seat has answered, resolves it. It returns a nil
// event slice (and the prompt still pending, now holding this response)
// while responses remain outstanding.
func RespondToPrompt(e *Engine, g *state.GameState, response state.CallResponse) (*state.GameState, []events.Event, error) {
	prompt := g.Round.PendingPrompt
	if prompt == nil {
		return g, nil, &InvalidActionError{Reason: "no pending call prompt"}
	}
	caller, ok := prompt.CallerFor(response.Seat)
	if !ok {
		return g, nil, &InvalidActionError{Reason: "seat not addressed by this prompt"}
	}
	if response.Kind != state.CallPass && !hasKind(caller.Kinds, response.Kind) {
		return g, nil, &InvalidActionError{Reason: "call kind not offered to this seat"}
	}

	newRound := g.Round.Clone()
	newPrompt := newRound.PendingPrompt
	newPrompt.Responses = append(newPrompt.Responses, response)
	newPrompt.RemoveSeat(response.Seat)
	cp := g.WithRound(newRound)

	if !newPrompt.IsResolvable() {
		return cp, nil, nil
	}

	switch newPrompt.Type {
	case state.PromptChankan:
		return e.resolveChankan(cp, newPrompt)
	default:
		return e.resolveDiscardCheck(cp, newPrompt)
	}
}

func hasKind(kinds []state.CallKind, k state.CallKind) bool {
	for _, existing := range kinds {
		if existing == k {
			return true
		}
	}
	return false
}

// resolveDiscardCheck implements §4.4's priority table: triple ron aborts
// the round outright; otherwise any ron response wins over any meld
// response, capped to the table's configured simultaneous-winner limit;
// only when nobody rons does the best-priority meld proceed.
func (e *Engine) resolveDiscardCheck(g *state.GameState, prompt *state.PendingCallPrompt) (*state.GameState, []events.Event, error) {
	declaredRon := map[int]bool{}
	for _, r := range prompt.Responses {
		if r.Kind == state.CallRon {
			declaredRon[r.Seat] = true
		}
	}
	g = e.applyTemporaryFuriten(g, prompt, declaredRon)

	var ronSeats []int
	for _, c := range prompt.Callers {
		if declaredRon[c.Seat] {
			ronSeats = append(ronSeats, c.Seat)
		}
	}

	if checkTripleRon(g, ronSeats) {
		cp, result := processAbortiveDraw(g, state.TripleRon)
		return clearPromptOn(cp), []events.Event{events.NewRoundEnd(result)}, nil
	}

	if len(ronSeats) > 0 {
		return e.settleRon(g, prompt, ronSeats)
	}

	var meldResponses []state.CallResponse
	for _, r := range prompt.Responses {
		if r.Kind == state.CallPon || r.Kind == state.CallChi || r.Kind == state.CallKan {
			meldResponses = append(meldResponses, r)
		}
	}
	if len(meldResponses) == 0 {
		return e.finishDiscardWithNoResponders(clearPromptOn(g), prompt.FromSeat, nil)
	}

	best := meldResponses[0]
	for _, r := range meldResponses[1:] {
		if betterMeldResponse(r, best, prompt.FromSeat) {
			best = r
		}
	}
	return e.dispatchMeldResponse(clearPromptOn(g), prompt, best)
}

func betterMeldResponse(candidate, current state.CallResponse, fromSeat int) bool {
	cp := meldCallPriority(candidate.Kind)
	bp := meldCallPriority(current.Kind)
	if cp != bp {
		return cp < bp
	}
	return state.CounterClockwiseDistance(fromSeat, candidate.Seat) < state.CounterClockwiseDistance(fromSeat, current.Seat)
}

func (e *Engine) settleRon(g *state.GameState, prompt *state.PendingCallPrompt, ronSeats []int) (*state.GameState, []events.Event, error) {
	settings := g.Settings
	maxWinners := 1
	if settings.HasDoubleRon {
		maxWinners = settings.DoubleRonCount
	}
	capped := ronSeats
	if len(capped) > maxWinners {
		capped = capped[:maxWinners]
	}

	if len(capped) == 1 {
		seat := capped[0]
		result, err := e.calculateRonValue(g, seat, prompt.TileID, prompt.FromSeat, false)
		if err != nil {
			return g, nil, err
		}
		cp, _ := scoring.ApplyRonScore(g, seat, prompt.FromSeat, result)
		cp = clearPromptOn(cp)
		finishedRound := cp.Round.Clone()
		finishedRound.Phase = state.Finished
		cp = cp.WithRound(finishedRound)
		rr := state.RoundResult{Type: state.Ron, WinnerSeat: seat, LoserSeat: prompt.FromSeat}
		return cp, []events.Event{events.NewRoundEnd(rr)}, nil
	}

	var winners []scoring.DoubleRonWinner
	for _, seat := range capped {
		result, err := e.calculateRonValue(g, seat, prompt.TileID, prompt.FromSeat, false)
		if err != nil {
			return g, nil, err
		}
		winners = append(winners, scoring.DoubleRonWinner{Seat: seat, Result: result})
	}
	cp, _, _ := scoring.ApplyDoubleRonScore(g, winners, prompt.FromSeat)
	cp = clearPromptOn(cp)
	finishedRound := cp.Round.Clone()
	finishedRound.Phase = state.Finished
	cp = cp.WithRound(finishedRound)
	rr := state.RoundResult{Type: state.DoubleRon, WinnerSeats: capped}
	return cp, []events.Event{events.NewRoundEnd(rr)}, nil
}

func (e *Engine) dispatchMeldResponse(g *state.GameState, prompt *state.PendingCallPrompt, best state.CallResponse) (*state.GameState, []events.Event, error) {
	switch best.Kind {
	case state.CallPon:
		cp, meldEvt, ok := processPonCall(g, best.Seat, prompt.FromSeat, prompt.TileID)
		if !ok {
			return g, nil, &InvalidActionError{Reason: "pon formation failed"}
		}
		return e.handOffTurn(cp, best.Seat, []events.Event{meldEvt})

	case state.CallChi:
		cp, meldEvt, ok := processChiCall(g, best.Seat, prompt.FromSeat, prompt.TileID, best.ChiTiles)
		if !ok {
			return g, nil, &InvalidActionError{Reason: "chi formation failed"}
		}
		return e.handOffTurn(cp, best.Seat, []events.Event{meldEvt})

	case state.CallKan:
		return e.completeOpenKan(g, best.Seat, prompt.FromSeat, prompt.TileID)

	default:
		return g, nil, &InvalidActionError{Reason: "unrecognized meld response kind"}
	}
}

// handOffTurn gives the caller the turn to discard without a fresh draw
// (pon/chi never draw a tile).
func (e *Engine) handOffTurn(g *state.GameState, seat int, out []events.Event) (*state.GameState, []events.Event, error) {
	actions, _, _ := e.buildAvailableActions(g, seat)
	out = append(out, events.NewTurn(seat, actions, g.Round.Wall.Remaining()))
	return g, out, nil
}

// applyTemporaryFuriten marks every seat who had ron eligibility on this
// prompt but didn't declare it (§4.7): furiten until their own next draw.
func (e *Engine) applyTemporaryFuriten(g *state.GameState, prompt *state.PendingCallPrompt, declaredRon map[int]bool) *state.GameState {
	newRound := g.Round.Clone()
	changed := false
	for _, c := range prompt.Callers {
		if hasKind(c.Kinds, state.CallRon) && !declaredRon[c.Seat] {
			newRound.Players[c.Seat].IsTemporaryFuriten = true
			if newRound.Players[c.Seat].IsRiichi {
				// Declining a winning ron while in riichi is permanent
				// furiten for the rest of the hand (§4.7), unlike the
				// temporary flag which clears on the seat's own next draw.
				newRound.Players[c.Seat].IsRiichiFuriten = true
			}
			changed = true
		}
	}
	if !changed {
		return g
	}
	return g.WithRound(newRound)
}

func clearPromptOn(g *state.GameState) *state.GameState {
	newRound := g.Round.Clone()
	newRound.PendingPrompt = nil
	return g.WithRound(newRound)
}

// resolveChankan settles a shouminkan's robbing window: any ron response
// claims the tile as a chankan win; otherwise the added kan completes.
func (e *Engine) resolveChankan(g *state.GameState, prompt *state.PendingCallPrompt) (*state.GameState, []events.Event, error) {
	var ronSeats []int
	for _, r := range prompt.Responses {
		if r.Kind == state.CallRon {
			ronSeats = append(ronSeats, r.Seat)
		}
	}
	sortByDistance(ronSeats, prompt.FromSeat)

	g = e.applyTemporaryFuriten(g, prompt, seatSet(ronSeats))

	if len(ronSeats) == 0 {
		return e.completeAddedKan(clearPromptOn(g), prompt.FromSeat, prompt.KanType)
	}

	maxWinners := 1
	if g.Settings.HasDoubleRon {
		maxWinners = g.Settings.DoubleRonCount
	}
	capped := ronSeats
	if len(capped) > maxWinners {
		capped = capped[:maxWinners]
	}

	if len(capped) == 1 {
		seat := capped[0]
		result, err := e.calculateRonValue(g, seat, prompt.TileID, prompt.FromSeat, true)
		if err != nil {
			return g, nil, err
		}
		cp, _ := scoring.ApplyRonScore(g, seat, prompt.FromSeat, result)
		cp = clearPromptOn(cp)
		finishedRound := cp.Round.Clone()
		finishedRound.Phase = state.Finished
		cp = cp.WithRound(finishedRound)
		rr := state.RoundResult{Type: state.Ron, WinnerSeat: seat, LoserSeat: prompt.FromSeat}
		return cp, []events.Event{events.NewRoundEnd(rr)}, nil
	}

	var winners []scoring.DoubleRonWinner
	for _, seat := range capped {
		result, err := e.calculateRonValue(g, seat, prompt.TileID, prompt.FromSeat, true)
		if err != nil {
			return g, nil, err
		}
		winners = append(winners, scoring.DoubleRonWinner{Seat: seat, Result: result})
	}
	cp, _, _ := scoring.ApplyDoubleRonScore(g, winners, prompt.FromSeat)
	cp = clearPromptOn(cp)
	finishedRound := cp.Round.Clone()
	finishedRound.Phase = state.Finished
	cp = cp.WithRound(finishedRound)
	rr := state.RoundResult{Type: state.DoubleRon, WinnerSeats: capped}
	return cp, []events.Event{events.NewRoundEnd(rr)}, nil
}

func seatSet(seats []int) map[int]bool {
	out := make(map[int]bool, len(seats))
	for _, s := range seats {
		out[s] = true
	}
	return out
}
