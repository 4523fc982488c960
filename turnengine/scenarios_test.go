package turnengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/cache"
	"mahjong/config"
	"mahjong/evaluator"
	"mahjong/events"
	"mahjong/melds"
	"mahjong/state"
	"mahjong/tiles"
)

func newTestEngine() *Engine {
	shantenCache, _ := cache.NewShantenCache()
	return New(evaluator.Reference{}, shantenCache)
}

// newBaseGame returns a deterministic (test-mode) GameState: dealer seat
// 0, ordered (unshuffled) wall, default settings. Fixtures overwrite
// individual seats' hands/melds/flags from here.
func newBaseGame(t *testing.T) *state.GameState {
	t.Helper()
	names := [4]string{"p0", "p1", "p2", "p3"}
	return state.InitGame(names, "", config.Default())
}

func id(t tiles.Type, copy int) tiles.ID { return tiles.NewID(t, copy) }

// TestSingleRon is scenario S2: a riichi'd seat rons off another seat's
// discard. P1 holds 234m 567m 789m 99s 1p3p (kanchan on 2p) in riichi; P0
// discards 2p. P2 holds 2222p from the ordered deal, so it is also addressed
// (pon/kan) and must pass before the prompt resolves.
func TestSingleRon(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)

	round := g.Round.Clone()
	round.Players[1].Tiles = []tiles.ID{
		id(tiles.Man2, 0), id(tiles.Man3, 0), id(tiles.Man4, 0),
		id(tiles.Man5, 0), id(tiles.Man6, 0), id(tiles.Man7, 0),
		id(tiles.Man7, 1), id(tiles.Man8, 0), id(tiles.Man9, 0),
		id(tiles.Sou9, 0), id(tiles.Sou9, 1),
		id(tiles.Pin1, 0), id(tiles.Pin3, 0),
	}
	round.Players[1].IsRiichi = true
	round.CurrentPlayerSeat = 0
	discardTile := id(tiles.Pin2, 0)
	round.Players[0].Tiles = append(round.Players[0].Tiles, discardTile)
	g = g.WithRound(round)

	cp, evs, err := ProcessDiscardPhase(e, g, 0, discardTile, false)
	require.NoError(t, err)
	require.NotEmpty(t, evs)

	require.NotNil(t, cp.Round.PendingPrompt)
	caller, ok := cp.Round.PendingPrompt.CallerFor(1)
	require.True(t, ok, "seat 1 should be offered ron on the kanchan wait")

	cp1, evs1, err := RespondToPrompt(e, cp, state.CallResponse{Seat: 1, Kind: caller.Kinds[0]})
	require.NoError(t, err)
	require.Empty(t, evs1, "seat 2 is still addressed for pon/kan on 2p")

	cp2, evs2, err := RespondToPrompt(e, cp1, state.CallResponse{Seat: 2, Kind: state.CallPass})
	require.NoError(t, err)
	require.Len(t, evs2, 1)

	roundEnd, ok := evs2[0].(events.RoundEnd)
	require.True(t, ok)
	assert.Equal(t, state.Ron, roundEnd.Result.Type)
	assert.Equal(t, 1, roundEnd.Result.WinnerSeat)
	assert.Equal(t, 0, roundEnd.Result.LoserSeat)
	assert.Equal(t, state.Finished, cp2.Round.Phase)
}

// TestTripleRonAbort is scenario S3: three simultaneous ron callers abort
// the round instead of settling as a capped multi-ron.
func TestTripleRonAbort(t *testing.T) {
	g := newBaseGame(t)
	assert.True(t, checkTripleRon(g, []int{1, 2, 3}))
	assert.False(t, checkTripleRon(g, []int{1, 2}))

	settings := g.Settings
	settings.HasTripleRonAbort = false
	g.Settings = settings
	assert.False(t, checkTripleRon(g, []int{1, 2, 3}), "triple ron abort must be settings-gated")
}

// TestAddedKanChankanDecline is scenario S4: P0 upgrades an existing pon
// to a kan while P1 is waiting on the exact tile (2p3p waiting on 1p or 4p,
// holding no 1p so all four physical copies stay with P0). P1 passes; the
// kan completes and P1's furiten flags are set.
func TestAddedKanChankanDecline(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)

	round := g.Round.Clone()
	round.Players[0].Melds = []melds.Meld{{
		Kind:         melds.Pon,
		CallerSeat:   0,
		FromSeat:     3,
		TileIDs:      []tiles.ID{id(tiles.Pin1, 0), id(tiles.Pin1, 1), id(tiles.Pin1, 2)},
		CalledTileID: int(id(tiles.Pin1, 2)),
	}}
	round.Players[0].Tiles = []tiles.ID{
		id(tiles.Man2, 0), id(tiles.Man3, 0), id(tiles.Man4, 0),
		id(tiles.Man5, 0), id(tiles.Man6, 0), id(tiles.Man7, 0),
		id(tiles.Sou2, 0), id(tiles.Sou3, 0), id(tiles.Sou4, 0),
		id(tiles.Pin1, 3),
	}
	round.Players[1].Tiles = []tiles.ID{
		id(tiles.Man2, 1), id(tiles.Man3, 1), id(tiles.Man4, 1),
		id(tiles.Man5, 1), id(tiles.Man6, 1), id(tiles.Man7, 1),
		id(tiles.Man7, 2), id(tiles.Man8, 1), id(tiles.Man9, 1),
		id(tiles.Sou9, 0), id(tiles.Sou9, 1),
		id(tiles.Pin2, 0), id(tiles.Pin3, 0),
	}
	round.Players[1].IsRiichi = true
	round.CurrentPlayerSeat = 0
	g = g.WithRound(round)

	cp, evs, err := ProcessDeclareAddedKan(e, g, 0, tiles.Pin1)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	promptEvt, ok := evs[0].(events.CallPrompt)
	require.True(t, ok)
	assert.Equal(t, state.PromptChankan, promptEvt.PromptType)
	assert.Equal(t, 0, promptEvt.FromSeat)
	require.Len(t, promptEvt.Callers, 1)
	assert.Equal(t, 1, promptEvt.Callers[0].Seat)

	cp2, evs2, err := RespondToPrompt(e, cp, state.CallResponse{Seat: 1, Kind: state.CallPass})
	require.NoError(t, err)
	require.NotEmpty(t, evs2)

	assert.True(t, cp2.Round.Players[1].IsTemporaryFuriten)
	assert.True(t, cp2.Round.Players[1].IsRiichiFuriten)

	found := false
	for _, m := range cp2.Round.Players[0].Melds {
		if m.Kind == melds.AddedKan {
			found = true
		}
	}
	assert.True(t, found, "the pon should have been upgraded to an added kan")
	assert.Nil(t, cp2.Round.PendingPrompt)
}

// TestFourKansAbort is scenario S5: a 4th kan across more than one player
// ends the round immediately, but four kans all by the same player does
// not (the round keeps going for that player's own suukaikan tsumo/draw).
func TestFourKansAbort(t *testing.T) {
	g := newBaseGame(t)
	round := g.Round.Clone()
	kanOf := func(seat int, t2 tiles.Type) melds.Meld {
		return melds.Meld{
			Kind:       melds.ClosedKan,
			CallerSeat: seat,
			FromSeat:   melds.NoSeat,
			TileIDs:    []tiles.ID{id(t2, 0), id(t2, 1), id(t2, 2), id(t2, 3)},
		}
	}
	round.Players[0].Melds = []melds.Meld{kanOf(0, tiles.Man1), kanOf(0, tiles.Man2), kanOf(0, tiles.Man3)}
	round.Players[1].Melds = []melds.Meld{kanOf(1, tiles.Man4)}
	g = g.WithRound(round)
	assert.True(t, checkFourKans(g), "four kans split across two players aborts the round")

	round2 := g.Round.Clone()
	round2.Players[1].Melds = nil
	round2.Players[0].Melds = append(round2.Players[0].Melds, kanOf(0, tiles.Man4))
	g2 := g.WithRound(round2)
	assert.False(t, checkFourKans(g2), "one player holding all four kans continues the round")
}

// TestNagashiManganExhaustiveDraw is scenario S6: P0 (the dealer)'s
// discards are all terminal/honor tiles and none was ever claimed by an
// opponent's meld; the live wall is already empty when P0 draws.
// Expected: nagashi mangan settles ahead of the ordinary noten-payment
// path, every other seat pays the dealer-sized amount since P0 is the
// dealer, and riichi sticks are left untouched (they carry to the next
// hand, unlike a won hand's sticks which the winner collects).
func TestNagashiManganExhaustiveDraw(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)

	round := g.Round.Clone()
	round.Players[0].Discards = []state.Discard{
		{TileID: id(tiles.Man1, 0), ClaimedBySeat: state.NoPaoSeat},
		{TileID: id(tiles.East, 0), ClaimedBySeat: state.NoPaoSeat},
		{TileID: id(tiles.Haku, 0), ClaimedBySeat: state.NoPaoSeat},
	}
	round.CurrentPlayerSeat = 0
	g = g.WithRound(round)
	g.RiichiSticks = 1

	for g.Round.Wall.Remaining() > 0 {
		_, _ = g.Round.Wall.Draw()
	}
	require.Equal(t, 0, g.Round.Wall.Remaining())

	startingScores := [4]int{}
	for seat := 0; seat < 4; seat++ {
		startingScores[seat] = g.Round.Players[seat].Score
	}

	cp, evs := ProcessDrawPhase(e, g)
	require.Len(t, evs, 1)

	roundEnd, ok := evs[0].(events.RoundEnd)
	require.True(t, ok)
	assert.Equal(t, state.NagashiMangan, roundEnd.Result.Type)
	assert.Contains(t, roundEnd.Result.QualifyingSeats, 0)
	assert.Equal(t, state.Finished, cp.Round.Phase)
	assert.Equal(t, 1, cp.RiichiSticks, "nagashi mangan must not clear riichi sticks")

	total := 0
	for seat := 0; seat < 4; seat++ {
		delta := cp.Round.Players[seat].Score - startingScores[seat]
		total += delta
		if seat == 0 {
			assert.Positive(t, delta)
		} else {
			assert.Negative(t, delta)
		}
	}
	assert.Equal(t, 0, total, "nagashi mangan payments must conserve points")
}

func TestCheckFourWindsRequiresAllFourSeatsSameWind(t *testing.T) {
	g := newBaseGame(t)
	round := g.Round.Clone()
	round.AllDiscards = []state.DiscardRecord{
		{Seat: 0, TileID: id(tiles.East, 0)},
		{Seat: 1, TileID: id(tiles.East, 1)},
		{Seat: 2, TileID: id(tiles.East, 2)},
		{Seat: 3, TileID: id(tiles.East, 3)},
	}
	g = g.WithRound(round)
	assert.True(t, checkFourWinds(g))

	round2 := g.Round.Clone()
	round2.AllDiscards = []state.DiscardRecord{
		{Seat: 0, TileID: id(tiles.East, 0)},
		{Seat: 1, TileID: id(tiles.South, 0)},
		{Seat: 2, TileID: id(tiles.East, 2)},
		{Seat: 3, TileID: id(tiles.East, 3)},
	}
	g2 := g.WithRound(round2)
	assert.False(t, checkFourWinds(g2))
}

// TestDiscardRejectsWrongSeat covers the pending-prompt/turn-ownership
// invariant: only the round's current seat may discard.
func TestDiscardRejectsWrongSeat(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)
	round := g.Round.Clone()
	round.CurrentPlayerSeat = 0
	g = g.WithRound(round)

	wrongSeat := 1
	tileID := g.Round.Players[wrongSeat].Tiles[0]
	_, _, err := ProcessDiscardPhase(e, g, wrongSeat, tileID, false)
	require.Error(t, err)
	var invalid *InvalidActionError
	assert.ErrorAs(t, err, &invalid)
}

// TestKanCapRespected is the kan-cap universal invariant: no seat's
// possible-closed-kan list is ever offered once the round already holds
// MaxKansPerRound kans.
func TestKanCapRespected(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)
	round := g.Round.Clone()
	kanOf := func(seat int, t2 tiles.Type) melds.Meld {
		return melds.Meld{Kind: melds.ClosedKan, CallerSeat: seat, FromSeat: melds.NoSeat,
			TileIDs: []tiles.ID{id(t2, 0), id(t2, 1), id(t2, 2), id(t2, 3)}}
	}
	round.Players[0].Melds = []melds.Meld{
		kanOf(0, tiles.Man1), kanOf(0, tiles.Man2), kanOf(0, tiles.Man3), kanOf(0, tiles.Man4),
	}
	round.Players[1].Tiles = []tiles.ID{
		id(tiles.Sou1, 0), id(tiles.Sou1, 1), id(tiles.Sou1, 2), id(tiles.Sou1, 3),
	}
	g = g.WithRound(round)

	assert.Empty(t, e.possibleClosedKans(g, 1), "no further kan once MaxKansPerRound is already reached")
}
