// Action dispatch and the bot-pipelining drive loop (§6, §4.12). Grounded
// on framework/game/engine_handler.go's pattern of unmarshal-then-
// DriveEngine, generalized here to a typed Action/ActionData pair routed
// to the matching turnengine entry point under the session's lock.
package service

import (
	"time"

	"mahjong/events"
	"mahjong/logging"
	"mahjong/state"
	"mahjong/tiles"
	"mahjong/turnengine"
)

// HandleAction is the service's single entry point for a player-initiated
// action (§6's handle_action). It applies the action, then drives the game
// forward through any bot turns and prompt responses until a human input is
// again required or the round/game ends, returning every event produced.
func (s *Service) HandleAction(gameID, playerName string, action Action, data ActionData) ([]events.Event, error) {
	session, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	seat, ok := seatByName(session.g, playerName)
	if !ok {
		return nil, &PlayerNotFoundError{GameID: gameID, PlayerName: playerName}
	}

	if action == ActionConfirmRound {
		evs, err := s.confirmRoundLocked(session, seat)
		session.lastActivity = time.Now()
		if err != nil {
			return []events.Event{events.NewError(seat, events.ErrInvalidAction, err.Error())}, nil
		}
		return evs, nil
	}

	if session.g.Round.Phase == state.Finished {
		return nil, &turnengine.InvalidActionError{Reason: "round already finished; awaiting round-advance confirmation"}
	}

	session.seatTimers[seat].Cancel()

	g, out, err := s.applySeatAction(session.g, seat, action, data)
	if err != nil {
		return []events.Event{events.NewError(seat, classifyError(action), err.Error())}, nil
	}
	session.g = g

	out = append(out, s.driveLoop(session)...)
	session.lastActivity = time.Now()
	return out, nil
}

// applySeatAction routes one seat-initiated action to its turnengine
// handler. CallKan is the one ambiguous entry: with a pending discard-check
// prompt addressing this seat it is a daiminkan response; on the seat's own
// turn with no prompt it is a self-declared ankan/shouminkan.
func (s *Service) applySeatAction(g *state.GameState, seat int, action Action, data ActionData) (*state.GameState, []events.Event, error) {
	switch action {
	case ActionDiscard:
		return turnengine.ProcessDiscardPhase(s.engine, g, seat, data.TileID, false)
	case ActionDeclareRiichi:
		return turnengine.ProcessDiscardPhase(s.engine, g, seat, data.TileID, true)
	case ActionDeclareTsumo:
		return turnengine.ProcessDeclareTsumo(s.engine, g, seat)
	case ActionCallKyuushu:
		return turnengine.ProcessKyuushuKyuuhai(s.engine, g, seat)
	case ActionCallRon:
		return turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallRon})
	case ActionPass:
		return turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallPass})
	case ActionCallPon:
		return turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallPon})
	case ActionCallChi:
		return turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallChi, ChiTiles: data.SequenceTiles})
	case ActionCallKan:
		if g.Round.PendingPrompt != nil {
			return turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallKan, KanTileID: data.TileID})
		}
		return s.declareKan(g, seat, data.KanType)
	default:
		return g, nil, &turnengine.InvalidActionError{Reason: "unrecognized action"}
	}
}

// declareKan tries ankan first, then shouminkan: the engine itself is the
// authority on which is legal for kanType, so the fallback costs nothing
// beyond a single extra rejected call.
func (s *Service) declareKan(g *state.GameState, seat int, kanType tiles.Type) (*state.GameState, []events.Event, error) {
	cp, out, err := turnengine.ProcessDeclareClosedKan(s.engine, g, seat, kanType)
	if err == nil {
		return cp, out, nil
	}
	return turnengine.ProcessDeclareAddedKan(s.engine, g, seat, kanType)
}

func classifyError(action Action) events.ErrorCode {
	switch action {
	case ActionDiscard, ActionDeclareRiichi:
		return events.ErrInvalidDiscard
	case ActionDeclareTsumo, ActionCallRon:
		return events.ErrHandCalculation
	case ActionCallPon, ActionCallChi, ActionCallKan:
		return events.ErrInvalidMeld
	default:
		return events.ErrInvalidAction
	}
}

// driveLoop runs after every state-changing action: it resolves bot
// responses to an open prompt, draws for and acts on behalf of a bot whose
// turn it is, and opens the round-advance confirmation window the instant
// the round finishes. It returns once every path forward needs a human
// (or has none left to wait on).
func (s *Service) driveLoop(session *gameSession) []events.Event {
	var out []events.Event
	for {
		g := session.g

		if g.Round.Phase == state.Finished {
			out = append(out, s.openRoundAdvanceLocked(session, out)...)
			return out
		}

		if g.Round.PendingPrompt != nil {
			progressed, evs := s.tryBotPromptResponses(session)
			out = append(out, evs...)
			if !progressed {
				s.armPromptTimersLocked(session)
				return out
			}
			continue
		}

		seat := g.Round.CurrentPlayerSeat
		player := g.Round.Players[seat]
		owesDraw := len(player.Tiles)+3*len(player.Melds) == 13

		if owesDraw {
			newG, evs := turnengine.ProcessDrawPhase(s.engine, g)
			session.g = newG
			out = append(out, evs...)
			continue
		}

		if !player.IsBot {
			s.armTurnTimerLocked(session, seat)
			return out
		}

		tileID, riichi := s.bot.Discard(g, seat)
		newG, evs, err := turnengine.ProcessDiscardPhase(s.engine, g, seat, tileID, riichi)
		if err != nil {
			logging.Error("service: bot discard rejected for game %s seat %d: %v", session.id, seat, err)
			newG, evs, err = turnengine.ProcessDiscardPhase(s.engine, g, seat, tileID, false)
			if err != nil {
				logging.Error("service: bot fallback discard also rejected for game %s seat %d: %v", session.id, seat, err)
				return out
			}
		}
		session.g = newG
		out = append(out, evs...)
	}
}

// tryBotPromptResponses answers every bot seat addressed by the round's
// pending prompt, one round of RespondToPrompt calls. It reports whether it
// made any progress so driveLoop knows whether to keep looping or to stop
// and wait on a human.
func (s *Service) tryBotPromptResponses(session *gameSession) (bool, []events.Event) {
	g := session.g
	prompt := g.Round.PendingPrompt
	if prompt == nil {
		return false, nil
	}

	var out []events.Event
	progressed := false
	for _, seat := range append([]int(nil), prompt.PendingSeats...) {
		if g.Round.PendingPrompt == nil {
			break
		}
		player := g.Round.Players[seat]
		if !player.IsBot {
			continue
		}
		resp := s.bot.Respond(g, seat, g.Round.PendingPrompt)
		newG, evs, err := turnengine.RespondToPrompt(s.engine, g, resp)
		if err != nil {
			logging.Error("service: bot prompt response rejected for game %s seat %d: %v", session.id, seat, err)
			continue
		}
		session.g = newG
		g = newG
		out = append(out, evs...)
		progressed = true
	}
	return progressed, out
}

// armTurnTimerLocked starts seat's turn timer (bank + base), wiring its
// expiry to the same default-action path §4.11 describes for a timed-out
// discard prompt: tsumogiri of the drawn tile.
func (s *Service) armTurnTimerLocked(session *gameSession, seat int) {
	base := time.Duration(session.g.Settings.BaseTurnSeconds) * time.Second
	gameID := session.id
	session.seatTimers[seat].StartTurn(base, func() {
		s.onTimerExpiry(gameID, seat, TimeoutTurn)
	})
}

// armPromptTimersLocked starts a fixed meld-decision window for every human
// seat still addressed by the pending prompt.
func (s *Service) armPromptTimersLocked(session *gameSession) {
	prompt := session.g.Round.PendingPrompt
	if prompt == nil {
		return
	}
	d := time.Duration(session.g.Settings.MeldDecisionSeconds) * time.Second
	gameID := session.id
	for _, seat := range prompt.PendingSeats {
		if session.g.Round.Players[seat].IsBot {
			continue
		}
		if session.seatTimers[seat].Active() {
			continue
		}
		seat := seat
		session.seatTimers[seat].StartFixed(d, func() {
			s.onTimerExpiry(gameID, seat, TimeoutMeld)
		})
	}
}

// onTimerExpiry is a SeatTimer's expiry callback, invoked from the timer's
// own goroutine. It re-acquires the session lock, applies §4.11's default
// action, drives the loop forward, and hands any produced events to the
// Service's broadcast sink (HandleAction's caller is long gone by now).
func (s *Service) onTimerExpiry(gameID string, seat int, kind TimeoutType) {
	evs, err := s.handleTimeoutSeat(gameID, seat, kind)
	if err != nil {
		logging.Warn("service: timeout handling failed for game %s seat %d: %v", gameID, seat, err)
		return
	}
	if s.broadcast != nil {
		s.broadcast(gameID, evs)
	}
}
