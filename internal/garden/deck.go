package garden

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// Deck composition per player.
const (
	copiesPerSpecies = 4
	pestsPerPlayer   = 5
)

// pestNamespace seeds ids for pests created to satisfy obligations.
var pestNamespace = uuid.MustParse("6f1d8a4e-3b7c-4f0a-9d2e-5c8b1a7e4f63")

// generateDeck builds the draw pile for playerCount players and shuffles it.
// Tile ids are drawn from rng so a seed reproduces the whole deck.
func generateDeck(playerCount int, rng *rand.Rand) ([]*Tile, error) {
	size := (len(catalog)*copiesPerSpecies + pestsPerPlayer) * playerCount
	deck := make([]*Tile, 0, size)

	add := func(kind TileKind, def *PlantDef) error {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return fmt.Errorf("garden: cannot generate tile id: %w", err)
		}
		deck = append(deck, &Tile{ID: id.String(), Kind: kind, Plant: def})
		return nil
	}

	for i := 0; i < playerCount; i++ {
		for _, def := range catalog {
			for c := 0; c < copiesPerSpecies; c++ {
				if err := add(KindPlant, def); err != nil {
					return nil, err
				}
			}
		}
		for c := 0; c < pestsPerPlayer; c++ {
			if err := add(KindPest, nil); err != nil {
				return nil, err
			}
		}
	}

	shuffle(deck, rng)
	return deck, nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(tiles []*Tile, rng *rand.Rand) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// drawTile pops the top of the deck.
func (g *Game) drawTile() (*Tile, bool) {
	n := len(g.deck)
	if n == 0 {
		return nil, false
	}
	t := g.deck[n-1]
	g.deck[n-1] = nil
	g.deck = g.deck[:n-1]
	return t, true
}

// replenish draws until the draft zone reaches its target size. Pests are
// discarded and become one obligation for every player.
func (g *Game) replenish() {
	for len(g.draft) < g.settings.DraftSize {
		t, ok := g.drawTile()
		if !ok {
			return
		}
		if t.IsPest() {
			g.discard = append(g.discard, t)
			for _, p := range g.players {
				p.PestToPlace++
			}
			g.logf("Pest drawn: every player must place a pest")
			continue
		}
		g.draft = append(g.draft, t)
	}
}

// mintPest creates the tile for a forced pest placement.
func (g *Game) mintPest() *Tile {
	id := uuid.NewSHA1(pestNamespace, []byte(strconv.Itoa(g.nextMint)))
	g.nextMint++
	return &Tile{ID: id.String(), Kind: KindPest}
}
