package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/config"
	"mahjong/evaluator"
)

func newTestService() *Service {
	return New(evaluator.Reference{}, nil, 0)
}

func startTestGame(t *testing.T, s *Service) (string, [4]string) {
	t.Helper()
	names := [4]string{"alice", "bob", "carol", "dave"}
	gameID, evs, err := s.StartGame(names, config.Default())
	require.NoError(t, err)
	require.NotEmpty(t, evs)
	return gameID, names
}

func TestStartGameDealsAndOpensDealerDraw(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat
	assert.Equal(t, names[dealer], g.Round.Players[dealer].Name)
	assert.Len(t, g.Round.Players[dealer].Tiles, 14)
	for seat, p := range g.Round.Players {
		if seat != dealer {
			assert.Len(t, p.Tiles, 13)
		}
	}
}

func TestHandleActionDiscardAdvancesTurn(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat
	drawnTile := g.Round.Players[dealer].Tiles[len(g.Round.Players[dealer].Tiles)-1]

	evs, err := s.HandleAction(gameID, names[dealer], ActionDiscard, ActionData{TileID: drawnTile})
	require.NoError(t, err)
	require.NotEmpty(t, evs)

	g2, err := s.GetGameState(gameID)
	require.NoError(t, err)
	discards := g2.Round.Players[dealer].Discards
	require.NotEmpty(t, discards)
	assert.Equal(t, drawnTile, discards[len(discards)-1].TileID)
}

func TestHandleActionUnknownGameReturnsError(t *testing.T) {
	s := newTestService()
	_, err := s.HandleAction("nonexistent", "alice", ActionDiscard, ActionData{})
	require.Error(t, err)
	var notFound *GameNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSubstituteBotDrivesTurnForward(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat

	evs, err := s.SubstituteBot(gameID, names[dealer])
	require.NoError(t, err)
	require.NotEmpty(t, evs)

	g2, err := s.GetGameState(gameID)
	require.NoError(t, err)
	assert.True(t, g2.Round.Players[dealer].IsBot)
	assert.NotEmpty(t, g2.Round.Players[dealer].Discards, "a substituted current player should discard at once")
}

func TestSubstituteBotAlreadyBotIsNoOp(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat

	_, err = s.SubstituteBot(gameID, names[dealer])
	require.NoError(t, err)
	evs, err := s.SubstituteBot(gameID, names[dealer])
	require.NoError(t, err)
	assert.Nil(t, evs)
}

func TestHandleTimeoutTurnDefaultsToTsumogiri(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat
	drawnTile := g.Round.Players[dealer].Tiles[len(g.Round.Players[dealer].Tiles)-1]

	evs, err := s.HandleTimeout(gameID, names[dealer], TimeoutTurn)
	require.NoError(t, err)
	require.NotEmpty(t, evs)

	g2, err := s.GetGameState(gameID)
	require.NoError(t, err)
	last := g2.Round.Players[dealer].Discards[len(g2.Round.Players[dealer].Discards)-1]
	assert.Equal(t, drawnTile, last.TileID)
	assert.True(t, last.IsTsumogiri)
}

func TestHandleTimeoutTurnNoOpWhenNotOwed(t *testing.T) {
	s := newTestService()
	gameID, names := startTestGame(t, s)

	g, err := s.GetGameState(gameID)
	require.NoError(t, err)
	dealer := g.Round.DealerSeat
	nonCurrent := (dealer + 1) % 4

	evs, err := s.HandleTimeout(gameID, names[nonCurrent], TimeoutTurn)
	require.NoError(t, err)
	assert.Nil(t, evs)
}

func TestCleanupGameForgetsSession(t *testing.T) {
	s := newTestService()
	gameID, _ := startTestGame(t, s)

	require.NoError(t, s.CleanupGame(gameID))
	_, err := s.GetGameState(gameID)
	require.Error(t, err)

	err = s.CleanupGame(gameID)
	require.Error(t, err)
}

func TestIsRoundAdvancePendingFalseDuringPlay(t *testing.T) {
	s := newTestService()
	gameID, _ := startTestGame(t, s)

	pending, err := s.IsRoundAdvancePending(gameID)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestSeatTimerCancelMidTurnKeepsBankAndStops(t *testing.T) {
	timer := NewSeatTimer(10 * time.Second)
	fired := make(chan struct{}, 1)
	timer.StartTurn(5*time.Second, func() { fired <- struct{}{} })
	time.Sleep(10 * time.Millisecond)
	timer.Cancel()
	select {
	case <-fired:
		t.Fatal("timer should not have fired")
	default:
	}
	assert.Equal(t, 10*time.Second, timer.bank)
	assert.False(t, timer.Active())
}

func TestSeatTimerFixedFiresOnExpiry(t *testing.T) {
	timer := NewSeatTimer(0)
	fired := make(chan struct{}, 1)
	timer.StartFixed(20*time.Millisecond, func() { fired <- struct{}{} })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}
