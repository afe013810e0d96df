package garden

import "unicode"

// TileKind tags the variant of a tile.
type TileKind string

const (
	KindPlant TileKind = "plant"
	KindPest  TileKind = "pest"
)

// Tile is a single game piece. A tile lives in exactly one container at a
// time: the deck, the draft zone, the discard pile or one grid cell.
type Tile struct {
	ID    string
	Kind  TileKind
	Plant *PlantDef // nil for pests
	Grown bool
}

// IsPest reports whether the tile is a pest.
func (t *Tile) IsPest() bool {
	return t != nil && t.Kind == KindPest
}

// IsPlant reports whether the tile is a plant.
func (t *Tile) IsPlant() bool {
	return t != nil && t.Kind == KindPlant && t.Plant != nil
}

// Name returns the species name, or "Pest".
func (t *Tile) Name() string {
	if t.IsPlant() {
		return t.Plant.Name
	}
	return "Pest"
}

// Symbol returns the display rune: 'X' for pests, the species letter for
// plants, upper case once grown.
func (t *Tile) Symbol() rune {
	switch {
	case t == nil:
		return '.'
	case t.IsPest():
		return 'X'
	case t.Grown:
		return unicode.ToUpper(t.Plant.Symbol)
	default:
		return unicode.ToLower(t.Plant.Symbol)
	}
}
