package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjong/config"
	"mahjong/state"
)

func TestTsumogiriDiscardReturnsLastTile(t *testing.T) {
	g := state.InitGame([4]string{"A", "B", "C", "D"}, "", config.Default())
	seat := g.Round.CurrentPlayerSeat
	newRound := g.Round.Clone()
	drawn, ok := newRound.Wall.Draw()
	assert.True(t, ok)
	newRound.Players[seat].Tiles = append(newRound.Players[seat].Tiles, drawn)
	g = g.WithRound(newRound)

	var b Tsumogiri
	tileID, riichi := b.Discard(g, seat)
	assert.Equal(t, drawn, tileID)
	assert.False(t, riichi)
}

func TestTsumogiriRespondAlwaysPasses(t *testing.T) {
	g := state.InitGame([4]string{"A", "B", "C", "D"}, "", config.Default())
	prompt := &state.PendingCallPrompt{
		Type:         state.PromptDiscardCheck,
		FromSeat:     0,
		Callers:      []state.CallerOption{{Seat: 1, Kinds: []state.CallKind{state.CallPon}}},
		PendingSeats: []int{1},
	}

	var b Tsumogiri
	resp := b.Respond(g, 1, prompt)
	assert.Equal(t, state.CallPass, resp.Kind)
	assert.Equal(t, 1, resp.Seat)
}
