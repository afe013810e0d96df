package garden

// PlantDef is an immutable species definition shared by every tile of that
// species.
type PlantDef struct {
	Name        string
	Symbol      rune // lower case display letter
	Cost        Cost
	BaseScore   int
	Description string

	// OnPlace runs once when the tile is placed. May be nil.
	OnPlace func(p *Player)
	// OnGrow runs once when the plant is grown and awards all of its score.
	OnGrow func(p *Player, n Neighborhood)
}

// Neighborhood describes the orthogonal surroundings of a cell. Tiles holds
// only occupied in-grid cells; Open counts the in-grid empty ones.
type Neighborhood struct {
	Tiles []*Tile
	Open  int
}

// Has reports whether any neighbor is a plant of the given species.
func (n Neighborhood) Has(species string) bool {
	for _, t := range n.Tiles {
		if t.IsPlant() && t.Plant.Name == species {
			return true
		}
	}
	return false
}

// Plants returns the number of plant neighbors.
func (n Neighborhood) Plants() int {
	count := 0
	for _, t := range n.Tiles {
		if t.IsPlant() {
			count++
		}
	}
	return count
}

// HasOtherThan reports whether any neighbor is a plant of a different species.
func (n Neighborhood) HasOtherThan(species string) bool {
	for _, t := range n.Tiles {
		if t.IsPlant() && t.Plant.Name != species {
			return true
		}
	}
	return false
}

// Grown returns the number of grown plant neighbors.
func (n Neighborhood) Grown() int {
	count := 0
	for _, t := range n.Tiles {
		if t.IsPlant() && t.Grown {
			count++
		}
	}
	return count
}

// Species returns the number of distinct species among plant neighbors.
func (n Neighborhood) Species() int {
	seen := make(map[string]struct{}, len(n.Tiles))
	for _, t := range n.Tiles {
		if t.IsPlant() {
			seen[t.Plant.Name] = struct{}{}
		}
	}
	return len(seen)
}

func scoreIf(base, bonus int, cond bool) func(*Player, Neighborhood) {
	return func(p *Player, _ Neighborhood) {
		p.Score += base
		if cond {
			p.Score += bonus
		}
	}
}

var catalog = []*PlantDef{
	{
		Name: "Lavender", Symbol: 'l', BaseScore: 2,
		Cost:        Cost{Water: 1, Light: 1},
		Description: "+1 if next to a plant of another species",
		OnGrow: func(p *Player, n Neighborhood) {
			scoreIf(2, 1, n.HasOtherThan("Lavender"))(p, n)
		},
	},
	{
		Name: "Sunflower", Symbol: 's', BaseScore: 2,
		Cost:        Cost{Light: 2},
		Description: "+1 if next to a Compost heap",
		OnGrow: func(p *Player, n Neighborhood) {
			scoreIf(2, 1, n.Has("Compost"))(p, n)
		},
	},
	{
		Name: "Mushroom", Symbol: 'm', BaseScore: 1,
		Cost:        Cost{Compost: 2},
		Description: "+1 if next to a Tree",
		OnGrow: func(p *Player, n Neighborhood) {
			scoreIf(1, 1, n.Has("Tree"))(p, n)
		},
	},
	{
		Name: "Tree", Symbol: 't', BaseScore: 3,
		Cost:        Cost{Water: 2, Compost: 2},
		Description: "no synergy",
		OnGrow: func(p *Player, _ Neighborhood) {
			p.Score += 3
		},
	},
	{
		Name: "Daisy", Symbol: 'd', BaseScore: 1,
		Cost:        Cost{Water: 1, Light: 1},
		Description: "+1 if next to any plant",
		OnGrow: func(p *Player, n Neighborhood) {
			scoreIf(1, 1, n.Plants() > 0)(p, n)
		},
	},
	{
		Name: "Compost", Symbol: 'c', BaseScore: 0,
		Cost:        Cost{Water: 1},
		Description: "gives 1 compost when placed, 2 more when grown",
		OnPlace: func(p *Player) {
			p.Gain(Compost, 1)
		},
		OnGrow: func(p *Player, _ Neighborhood) {
			p.Gain(Compost, 2)
		},
	},
	{
		Name: "Spring", Symbol: 'p', BaseScore: 1,
		Cost:        Cost{Light: 1},
		Description: "gives 2 water when placed",
		OnPlace: func(p *Player) {
			p.Gain(Water, 2)
		},
		OnGrow: func(p *Player, _ Neighborhood) {
			p.Score++
		},
	},
	{
		Name: "Rose", Symbol: 'r', BaseScore: 3,
		Cost:        Cost{Water: 2, Light: 1},
		Description: "+1 per grown neighbor",
		OnGrow: func(p *Player, n Neighborhood) {
			p.Score += 3 + n.Grown()
		},
	},
	{
		Name: "Fern", Symbol: 'f', BaseScore: 1,
		Cost:        Cost{Water: 1},
		Description: "+1 per open neighboring cell",
		OnGrow: func(p *Player, n Neighborhood) {
			p.Score += 1 + n.Open
		},
	},
	{
		Name: "Wildflower", Symbol: 'w', BaseScore: 1,
		Cost:        Cost{Light: 1},
		Description: "+1 per distinct neighboring species",
		OnGrow: func(p *Player, n Neighborhood) {
			p.Score += 1 + n.Species()
		},
	},
	{
		Name: "Cactus", Symbol: 'k', BaseScore: 2,
		Cost:        Cost{Light: 2},
		Description: "+2 if it has no neighbors at all",
		OnGrow: func(p *Player, n Neighborhood) {
			scoreIf(2, 2, len(n.Tiles) == 0)(p, n)
		},
	},
}

var catalogByName = func() map[string]*PlantDef {
	m := make(map[string]*PlantDef, len(catalog))
	for _, def := range catalog {
		m[def.Name] = def
	}
	return m
}()

// LookupPlant returns the definition for a species name.
func LookupPlant(name string) (*PlantDef, bool) {
	def, ok := catalogByName[name]
	return def, ok
}

// Catalog returns every species in deck order. The slice is a copy; the
// definitions are shared.
func Catalog() []*PlantDef {
	out := make([]*PlantDef, len(catalog))
	copy(out, catalog)
	return out
}
