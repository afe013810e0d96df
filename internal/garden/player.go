package garden

import "github.com/vovakirdan/shared-garden/internal/core"

// Player is the per-seat state. Fields are mutated only by Game methods and
// by catalog effects through Gain.
type Player struct {
	ID          string
	Grid        *Grid
	Score       int
	Resources   Pool
	Infestation int

	CanPlace    bool
	CanGrow     bool
	PestToPlace int

	resourceCap int
}

func newPlayer(id string, s Settings) *Player {
	return &Player{
		ID:          id,
		Grid:        NewGrid(s.GridSize),
		Resources:   newPool(),
		resourceCap: s.MaxResources,
	}
}

// Gain adds n of a resource, capped at the game's maximum, and returns the
// amount actually added.
func (p *Player) Gain(r Resource, n int) int {
	before := p.Resources[r]
	p.Resources[r] = core.Clamp(before+n, 0, p.resourceCap)
	return p.Resources[r] - before
}

// CanAfford reports whether the player's pool covers c.
func (p *Player) CanAfford(c Cost) bool {
	return p.Resources.Covers(c)
}

// spend deducts c. Callers check CanAfford first.
func (p *Player) spend(c Cost) {
	for r, n := range c {
		p.Resources[r] -= n
	}
}
