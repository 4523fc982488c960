package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"mahjong/bot"
	"mahjong/cache"
	"mahjong/config"
	"mahjong/events"
	"mahjong/evaluator"
	"mahjong/logging"
	"mahjong/rng"
	"mahjong/state"
	"mahjong/turnengine"
)

// Service is the process's single point of entry for every game in
// flight: start_game/handle_action/cleanup_game/get_game_state/
// is_round_advance_pending/handle_timeout (§6), plus the background room
// reaper §5 calls for. One Service instance is meant to be shared across
// every connection the process serves.
type Service struct {
	mu    sync.RWMutex
	games map[string]*gameSession

	engine *turnengine.Engine
	bot    bot.Bot

	gameTTL    time.Duration
	reaperStop chan struct{}

	// broadcast, if set, receives every event a background transition
	// produces (a timer expiry driving the game forward) since there is no
	// synchronous caller to hand those events back to the way HandleAction's
	// return value does.
	broadcast func(gameID string, evs []events.Event)
}

// SetBroadcast installs the sink for asynchronously produced events (timer
// expiries). Call once before any game starts; not safe to change concurrently
// with live games.
func (s *Service) SetBroadcast(fn func(gameID string, evs []events.Event)) {
	s.broadcast = fn
}

// New builds a Service around the given hand evaluator. A nil bot defaults
// to the trivial tsumogiri/pass reference implementation.
func New(ev evaluator.HandEvaluator, b bot.Bot, gameTTL time.Duration) *Service {
	if b == nil {
		b = bot.Tsumogiri{}
	}
	shantenCache, err := cache.NewShantenCache()
	if err != nil {
		logging.Warn("service: shanten cache unavailable, falling back to uncached: %v", err)
		shantenCache = nil
	}

	s := &Service{
		games:      make(map[string]*gameSession),
		engine:     turnengine.New(ev, shantenCache),
		bot:        b,
		gameTTL:    gameTTL,
		reaperStop: make(chan struct{}),
	}
	go s.reapStaleGames()
	return s
}

// StartGame seeds and deals a fresh game for four named seats, returning
// its generated id plus the events a freshly connected client would see
// (GameStarted, RoundStarted, and the dealer's opening Draw).
func (s *Service) StartGame(names [4]string, settings config.Settings) (string, []events.Event, error) {
	return s.StartGameWithSeed(names, rng.GenerateSeed(), settings)
}

// StartGameWithSeed is StartGame with the wall/dealer seed pinned instead
// of freshly generated. The replay runner uses this to reconstruct a
// deterministic game from a recorded seed; ordinary callers should use
// StartGame.
func (s *Service) StartGameWithSeed(names [4]string, seed string, settings config.Settings) (string, []events.Event, error) {
	if err := config.Validate(settings); err != nil {
		return "", nil, err
	}

	g := state.InitGame(names, seed, settings)
	gameID := uuid.NewString()

	initialBank := time.Duration(settings.InitialBankSeconds) * time.Second
	session := newGameSession(gameID, g, initialBank)

	out := []events.Event{
		events.NewGameStarted(seed, state.RNGVersion, names),
		events.NewRoundStarted(g.RoundNumber, g.Round.DealerSeat, g.Round.RoundWind, g.HonbaSticks),
	}

	s.mu.Lock()
	s.games[gameID] = session
	s.mu.Unlock()

	session.mu.Lock()
	defer session.mu.Unlock()
	out = append(out, s.driveLoop(session)...)
	logging.Info("service: started game %s (dealer=%d)", gameID, g.Round.DealerSeat)
	return gameID, out, nil
}

// CleanupGame stops every timer and forgets a finished or abandoned game.
func (s *Service) CleanupGame(gameID string) error {
	s.mu.Lock()
	session, ok := s.games[gameID]
	if ok {
		delete(s.games, gameID)
	}
	s.mu.Unlock()
	if !ok {
		return &GameNotFoundError{GameID: gameID}
	}
	session.mu.Lock()
	session.cancelAllTimers()
	session.mu.Unlock()
	return nil
}

// GetGameState returns a defensive copy of a live game's current state.
func (s *Service) GetGameState(gameID string) (*state.GameState, error) {
	session, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.g.Clone(), nil
}

// IsRoundAdvancePending reports whether gameID is waiting on one or more
// human seats to confirm before the next round starts.
func (s *Service) IsRoundAdvancePending(gameID string) (bool, error) {
	session, err := s.lookup(gameID)
	if err != nil {
		return false, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.roundAdvance != nil, nil
}

func (s *Service) lookup(gameID string) (*gameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.games[gameID]
	if !ok {
		return nil, &GameNotFoundError{GameID: gameID}
	}
	return session, nil
}

// reapStaleGames deletes games that have had no activity for gameTTL,
// mirroring framework/game/monitor.go's ticker-driven background loop.
func (s *Service) reapStaleGames() {
	if s.gameTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.gameTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.reaperStop:
			return
		case <-ticker.C:
			s.sweepStaleGames()
		}
	}
}

func (s *Service) sweepStaleGames() {
	cutoff := time.Now().Add(-s.gameTTL)
	var stale []string

	s.mu.RLock()
	for id, session := range s.games {
		session.mu.Lock()
		last := session.lastActivity
		session.mu.Unlock()
		if last.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range stale {
		logging.Info("service: reaping stale game %s", id)
		_ = s.CleanupGame(id)
	}
}

// Stop halts the background reaper. Safe to call once at process shutdown.
func (s *Service) Stop() {
	close(s.reaperStop)
}
