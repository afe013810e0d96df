package garden

// IsGameOver reports whether the session has ended: a player reached the
// infestation limit, the deck ran out, or a grid is full.
func (g *Game) IsGameOver() bool {
	if len(g.deck) == 0 {
		return true
	}
	for _, p := range g.players {
		if p.Infestation >= g.settings.MaxInfestations || p.Grid.Full() {
			return true
		}
	}
	return false
}

// Winner returns the player with the highest score once the game is over.
// Ties go to the earliest player in turn order.
func (g *Game) Winner() (string, bool) {
	if !g.IsGameOver() {
		return "", false
	}
	best := g.order[0]
	for _, id := range g.order[1:] {
		if g.players[id].Score > g.players[best].Score {
			best = id
		}
	}
	return best, true
}
