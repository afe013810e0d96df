package garden

import "github.com/vovakirdan/shared-garden/internal/core"

// actor resolves the player for a command and checks the checks common to
// every action.
func (g *Game) actor(id string) (*Player, error) {
	if g.IsGameOver() {
		return nil, ruleErr(GameOver, "the game has ended")
	}
	p, ok := g.players[id]
	if !ok {
		return nil, ruleErr(PlayerNotFound, "no player %q", id)
	}
	if id != g.CurrentPlayer() {
		return nil, ruleErr(NotCurrentPlayer, "it is %s's turn", g.CurrentPlayer())
	}
	return p, nil
}

func (g *Game) blocked(p *Player) error {
	if g.settings.PestsBlockActions && p.PestToPlace > 0 {
		return ruleErr(PestsPending, "%d pest(s) must be placed first", p.PestToPlace)
	}
	return nil
}

func (g *Game) checkPlace(id string) (*Player, error) {
	p, err := g.actor(id)
	if err != nil {
		return nil, err
	}
	if !p.CanPlace {
		return nil, ruleErr(ActionAlreadyUsed, "already placed a tile this turn")
	}
	if err := g.blocked(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Game) checkIndex(index int) error {
	if index < 0 || index >= len(g.draft) {
		return ruleErr(InvalidTileIndex, "draft index %d out of range 0..%d", index, len(g.draft)-1)
	}
	return nil
}

func checkBounds(p *Player, x, y int) error {
	if !p.Grid.InBounds(x, y) {
		return ruleErr(OutOfBounds, "(%d, %d) is outside the %dx%d grid", x, y, p.Grid.Size(), p.Grid.Size())
	}
	return nil
}

// DraftPick returns the draft tile at index for the active player without
// removing it.
func (g *Game) DraftPick(id string, index int) (*Tile, error) {
	if _, err := g.checkPlace(id); err != nil {
		return nil, err
	}
	if err := g.checkIndex(index); err != nil {
		return nil, err
	}
	return g.draft[index], nil
}

// PlaceTile moves draft tile index onto the player's grid at (x, y) and
// runs its placement effect.
func (g *Game) PlaceTile(id string, index, x, y int) error {
	p, err := g.checkPlace(id)
	if err != nil {
		return err
	}
	if err := checkBounds(p, x, y); err != nil {
		return err
	}
	if err := g.checkIndex(index); err != nil {
		return err
	}

	tile := g.draft[index]
	if tile.IsPest() {
		if err := g.putPest(p, tile, x, y); err != nil {
			return err
		}
	} else {
		if occupant := p.Grid.At(x, y); occupant != nil {
			return ruleErr(CellOccupied, "%s already holds %s", label(x, y), occupant.Name())
		}
		p.Grid.set(x, y, tile)
		if tile.Plant.OnPlace != nil {
			tile.Plant.OnPlace(p)
		}
		g.logf("%s placed %s at %s", p.ID, tile.Name(), label(x, y))
	}

	g.draft = append(g.draft[:index], g.draft[index+1:]...)
	p.CanPlace = false
	return nil
}

// PlacePest resolves one forced pest placement at (x, y). It does not use
// up the player's tile placement for the turn.
func (g *Game) PlacePest(id string, x, y int) error {
	p, err := g.actor(id)
	if err != nil {
		return err
	}
	if p.PestToPlace == 0 {
		return ruleErr(InvalidTarget, "no pests to place")
	}
	if err := checkBounds(p, x, y); err != nil {
		return err
	}
	if p.Grid.At(x, y).IsPest() {
		return ruleErr(IllegalTarget, "%s already holds a pest", label(x, y))
	}
	if err := g.putPest(p, g.mintPest(), x, y); err != nil {
		return err
	}
	p.PestToPlace--
	return nil
}

// putPest places a pest, destroying any plant below it, then runs the
// infestation check.
func (g *Game) putPest(p *Player, pest *Tile, x, y int) error {
	occupant := p.Grid.At(x, y)
	if occupant.IsPest() {
		return ruleErr(IllegalTarget, "%s already holds a pest", label(x, y))
	}
	if occupant.IsPlant() {
		p.Score -= occupant.Plant.BaseScore
		g.discard = append(g.discard, occupant)
		g.logf("Pest destroyed %s's %s at %s (-%d)", p.ID, occupant.Name(), label(x, y), occupant.Plant.BaseScore)
	} else {
		g.logf("%s placed a pest at %s", p.ID, label(x, y))
	}
	p.Grid.set(x, y, pest)

	if p.Grid.PestNeighbors(x, y) >= 1 {
		p.Infestation++
		g.logf("Infestation! %s is at %d/%d", p.ID, p.Infestation, g.settings.MaxInfestations)
	}
	return nil
}

// GrowPlant pays the cost of the plant at (x, y), marks it grown and runs its
// growth effect.
func (g *Game) GrowPlant(id string, x, y int) error {
	p, err := g.actor(id)
	if err != nil {
		return err
	}
	if !p.CanGrow {
		return ruleErr(ActionAlreadyUsed, "already grew a plant this turn")
	}
	if err := g.blocked(p); err != nil {
		return err
	}
	if err := checkBounds(p, x, y); err != nil {
		return err
	}

	tile := p.Grid.At(x, y)
	switch {
	case tile == nil:
		return ruleErr(InvalidTarget, "%s is empty", label(x, y))
	case !tile.IsPlant():
		return ruleErr(InvalidTarget, "%s holds a pest", label(x, y))
	case tile.Grown:
		return ruleErr(InvalidTarget, "%s at %s is already grown", tile.Name(), label(x, y))
	}
	if !p.CanAfford(tile.Plant.Cost) {
		return ruleErr(InsufficientResources, "%s needs %s", tile.Name(), formatCost(tile.Plant.Cost))
	}

	p.spend(tile.Plant.Cost)
	tile.Grown = true
	before := p.Score
	if tile.Plant.OnGrow != nil {
		tile.Plant.OnGrow(p, p.Grid.Neighborhood(x, y))
	}
	p.CanGrow = false
	g.logf("%s grew %s at %s for %d points", p.ID, tile.Name(), label(x, y), p.Score-before)
	return nil
}

func label(x, y int) string {
	return core.Coord{X: x, Y: y}.Label()
}
