package state

import (
	"mahjong/config"
	"mahjong/rng"
	"mahjong/tiles"
)

// RNGVersion is stamped into every GameState so a replay can detect a
// derivation change rather than silently mis-replaying.
const RNGVersion = rng.Version

// dealHands deals 13 tiles to each seat starting from the dealer, in the
// canonical 4+4+4+1 pattern, leaving the live wall cursor past the dealt
// tiles. The 14th (dealer's first draw) tile is left for the draw phase.
func dealHands(w *tiles.Wall, dealerSeat int) [4][]tiles.ID {
	var hands [4][]tiles.ID
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			seat := (dealerSeat + i) % 4
			for k := 0; k < 4; k++ {
				t, ok := w.Draw()
				if !ok {
					panic("state: wall exhausted during initial deal")
				}
				hands[seat] = append(hands[seat], t)
			}
		}
	}
	for i := 0; i < 4; i++ {
		seat := (dealerSeat + i) % 4
		t, ok := w.Draw()
		if !ok {
			panic("state: wall exhausted during initial deal")
		}
		hands[seat] = append(hands[seat], t)
	}
	return hands
}

// InitGame builds the starting GameState for a fresh game: first-dealer
// determination (or seat 0 when seed is empty, i.e. test mode), wall
// shuffle, initial deal, and player records at the configured starting
// score.
func InitGame(names [4]string, seed string, settings config.Settings) *GameState {
	var dealerSeat int
	var dice [2]DiceRoll

	if seed == "" {
		dealerSeat = 0
		dice = [2]DiceRoll{{1, 1}, {1, 1}}
	} else {
		d, first, second := rng.DetermineFirstDealer(seed)
		dealerSeat = d
		dice = [2]DiceRoll{first, second}
	}

	var shuffled []tiles.ID
	if seed == "" {
		ordered := make([]tiles.ID, tiles.NumTiles)
		for i := range ordered {
			ordered[i] = tiles.ID(i)
		}
		shuffled = ordered
	} else {
		shuffled, _ = rng.GenerateShuffledWallAndDice(seed, 0)
	}

	wall := tiles.NewWall(shuffled)
	hands := dealHands(wall, dealerSeat)

	var players [4]Player
	for i := 0; i < 4; i++ {
		players[i] = NewPlayer(i, names[i], false, settings.StartingScore)
		players[i].Tiles = hands[i]
	}

	round := &RoundState{
		Wall:              wall,
		Players:           players,
		DealerSeat:        dealerSeat,
		CurrentPlayerSeat: dealerSeat,
		RoundWind:         East,
		Phase:             Playing,
		OpenedSeats:       map[int]bool{},
	}

	return &GameState{
		Round:              round,
		RoundNumber:        0,
		UniqueDealers:      1,
		Phase:              InProgress,
		Seed:               seed,
		RNGVersion:         RNGVersion,
		Settings:           settings,
		DealerDice:         dice,
		StartingDealerSeat: dealerSeat,
	}
}

// InitRound reshuffles and redeals for game.RoundNumber, preserving scores
// and every player's identity/bot flag but resetting all per-round flags.
func InitRound(g *GameState) *GameState {
	dealerSeat := g.Round.DealerSeat
	shuffled, _ := rng.GenerateShuffledWallAndDice(g.Seed, int64(g.RoundNumber))
	wall := tiles.NewWall(shuffled)
	hands := dealHands(wall, dealerSeat)

	var players [4]Player
	for i := 0; i < 4; i++ {
		prev := g.Round.Players[i]
		players[i] = NewPlayer(i, prev.Name, prev.IsBot, prev.Score)
		players[i].Tiles = hands[i]
	}

	round := &RoundState{
		Wall:              wall,
		Players:           players,
		DealerSeat:        dealerSeat,
		CurrentPlayerSeat: dealerSeat,
		RoundWind:         g.Round.RoundWind,
		Phase:             Playing,
		OpenedSeats:       map[int]bool{},
	}
	return g.WithRound(round)
}
