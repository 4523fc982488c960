// Bot substitution (§4.12): a human seat can be handed to a bot at any
// time. Grounded on framework/game/engine_handler.go's reconnect handler,
// generalized from "restore a connector" to "replace the seat's source of
// decisions entirely" — draining whatever the seat currently owes instead
// of resuming it.
package service

import (
	"time"

	"mahjong/events"
	"mahjong/turnengine"
)

// SubstituteBot marks playerName's seat as bot-controlled: any outstanding
// prompt response or round-advance confirmation it owed is answered with
// the default (pass / auto-confirm), its timer is cancelled, and — if that
// leaves it as the seat now expected to act — the bot drives the game
// forward exactly as driveLoop would for a seat that started the game as a
// bot. Calling this on a seat already bot-controlled is a no-op.
func (s *Service) SubstituteBot(gameID, playerName string) ([]events.Event, error) {
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
	if session.g.Round.Players[seat].IsBot {
		return nil, nil
	}

	session.seatTimers[seat].Cancel()

	newRound := session.g.Round.Clone()
	newRound.Players[seat].IsBot = true
	session.g = session.g.WithRound(newRound)

	var out []events.Event

	if prompt := session.g.Round.PendingPrompt; prompt != nil && seatPending(prompt, seat) {
		resp := s.bot.Respond(session.g, seat, prompt)
		newG, evs, err := turnengine.RespondToPrompt(s.engine, session.g, resp)
		if err == nil {
			session.g = newG
			out = append(out, evs...)
		}
	}

	out = append(out, s.substituteBotRoundAdvance(session, seat)...)
	out = append(out, s.driveLoop(session)...)
	session.lastActivity = time.Now()
	return out, nil
}
