package garden

// NextTurn passes play to the next player and refills the draft zone.
// It returns whether the game is over; once over it no longer advances.
func (g *Game) NextTurn() bool {
	if g.IsGameOver() {
		return true
	}

	g.current++
	if g.current == len(g.order) {
		g.current = 0
		g.turn++
	}
	g.beginTurn()
	g.replenish()
	return g.IsGameOver()
}

// beginTurn resets the active player's flags and pays their turn income.
// The resource rotates with turn and seat so that replaying from a
// snapshot needs no RNG state.
func (g *Game) beginTurn() {
	p := g.players[g.order[g.current]]
	p.CanPlace = true
	p.CanGrow = true
	p.PestToPlace = 0

	if g.settings.TurnIncome > 0 {
		r := Resources[(g.turn+g.current)%len(Resources)]
		if n := p.Gain(r, g.settings.TurnIncome); n > 0 {
			g.logf("%s gained %d %s", p.ID, n, r)
		}
	}
	g.logf("%s's turn", p.ID)
}
