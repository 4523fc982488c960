package service

import (
	"sync"
	"time"

	"mahjong/state"
)

// gameSession is one in-progress game's mutable service-layer state: the
// engine state itself plus everything the engine doesn't track because it
// belongs to the service boundary (timers, round-advance confirmations).
// A single mutex serializes every mutation, matching §5's "per game, a
// single lock serializes all mutations so that concurrent actions from
// different players interleave as whole action applications, never
// mid-handler."
type gameSession struct {
	mu sync.Mutex

	id string
	g  *state.GameState

	// seatTimers holds each seat's single timer slot, live for the whole
	// game regardless of whether that seat is currently human or bot (a
	// bot substitution leaves the bank as-is in case the seat is later
	// handed back to a human — not that this engine supports that, but
	// nothing about the timer needs to assume otherwise).
	seatTimers [4]*SeatTimer

	// pendingResult holds the most recent RoundEnd's typed result while a
	// round-advance confirmation window is open; nil otherwise.
	pendingResult *state.RoundResult
	// roundAdvance tracks which human seats have confirmed; nil when no
	// round-advance window is open. Bot seats are never added to it.
	roundAdvance map[int]bool

	lastActivity time.Time
}

func newGameSession(id string, g *state.GameState, initialBank time.Duration) *gameSession {
	s := &gameSession{
		id:           id,
		g:            g,
		lastActivity: time.Now(),
	}
	for i := range s.seatTimers {
		s.seatTimers[i] = NewSeatTimer(initialBank)
	}
	return s
}

// humanSeats returns every seat currently played by a human.
func (s *gameSession) humanSeats() []int {
	var out []int
	for i, p := range s.g.Round.Players {
		if !p.IsBot {
			out = append(out, i)
		}
	}
	return out
}

// cancelAllTimers stops every running timer for this session (used on
// cleanup and whenever a round-ending transition lands).
func (s *gameSession) cancelAllTimers() {
	for _, t := range s.seatTimers {
		t.Cancel()
	}
}
