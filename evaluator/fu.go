package evaluator

// ChiitoitsuFu is the fixed fu value for the seven-pairs shape.
const ChiitoitsuFu = 25

func tripletFu(g group) int {
	base := 2
	if g.Tile.IsTerminalOrHonor() {
		base = 4
	}
	if g.IsKan {
		base *= 4
	}
	if !g.Open {
		base *= 2
	}
	return base
}

func pairFu(g group, cfg HandConfig) int {
	fu := 0
	if g.Tile.IsDragon() {
		fu += 2
	}
	if g.Tile == cfg.RoundWind {
		fu += 2
	}
	if g.Tile == cfg.PlayerWind {
		fu += 2
	}
	return fu
}

func waitFu(w waitKind) int {
	switch w {
	case waitKanchan, waitPenchan, waitTanki:
		return 2
	default:
		return 0
	}
}

// computeFu applies the standard fu table, rounded up to the nearest 10,
// except the caller already special-cased chiitoitsu (fixed 25, no
// rounding) before reaching here.
func computeFu(h handShape, cfg HandConfig, isPinfu bool) int {
	if isPinfu && h.IsTsumo {
		return 20
	}

	fu := 20
	closed := !h.IsOpen

	if !h.IsTsumo && closed {
		fu += 10 // menzen ron
	}
	if h.IsTsumo {
		if isPinfu {
			fu += cfg.Rules.FuForPinfuTsumo
		} else {
			fu += 2
		}
	}

	for i, g := range h.Groups {
		switch g.Kind {
		case kindPair:
			fu += pairFu(g, cfg)
		case kindTriplet:
			gg := g
			if i == h.WinGroupIndex && !h.IsTsumo {
				gg.Open = true // ron-completed triplet scores as an open triplet
			}
			fu += tripletFu(gg)
		}
	}

	fu += waitFu(waitKindFor(h.winGroup(), h.WinType))

	if fu == 20 && h.IsOpen {
		fu += cfg.Rules.FuForOpenPinfu
	}

	return roundUp10(fu)
}

func roundUp10(n int) int {
	if n%10 == 0 {
		return n
	}
	return (n/10 + 1) * 10
}
