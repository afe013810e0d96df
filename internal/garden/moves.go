package garden

// LegalMoves lists every state-changing command the player may issue right
// now, in a stable order: pest placements, tile placements, growths, then
// nextTurn. Only the active player has moves. draftPick is a read-only
// preview and is not listed.
func (g *Game) LegalMoves(id string) []Command {
	p, err := g.actor(id)
	if err != nil {
		return nil
	}
	size := p.Grid.Size()
	var moves []Command

	if p.PestToPlace > 0 {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if !p.Grid.At(x, y).IsPest() {
					moves = append(moves, Command{Type: CmdPlacePest, Player: id, X: x, Y: y})
				}
			}
		}
	}

	free := g.blocked(p) == nil
	if p.CanPlace && free {
		for i, t := range g.draft {
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					occupant := p.Grid.At(x, y)
					if occupant == nil || (t.IsPest() && !occupant.IsPest()) {
						moves = append(moves, Command{Type: CmdPlaceTile, Player: id, Index: i, X: x, Y: y})
					}
				}
			}
		}
	}

	if p.CanGrow && free {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				t := p.Grid.At(x, y)
				if t.IsPlant() && !t.Grown && p.CanAfford(t.Plant.Cost) {
					moves = append(moves, Command{Type: CmdGrowPlant, Player: id, X: x, Y: y})
				}
			}
		}
	}

	return append(moves, Command{Type: CmdNextTurn, Player: id})
}
