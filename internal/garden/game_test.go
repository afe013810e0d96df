package garden

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

var testTileSeq int

func testSettings() Settings {
	s := DefaultSettings()
	s.Seed = 7
	s.TurnIncome = 0
	return s
}

// newTestGame returns a game with no pending pest obligations.
func newTestGame(t *testing.T, ids ...string) *Game {
	t.Helper()
	g, err := New(ids, testSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, p := range g.players {
		p.PestToPlace = 0
	}
	return g
}

func plantTile(t *testing.T, name string) *Tile {
	t.Helper()
	def, ok := LookupPlant(name)
	if !ok {
		t.Fatalf("unknown plant %q", name)
	}
	testTileSeq++
	return &Tile{ID: fmt.Sprintf("test-plant-%d", testTileSeq), Kind: KindPlant, Plant: def}
}

func pestTile() *Tile {
	testTileSeq++
	return &Tile{ID: fmt.Sprintf("test-pest-%d", testTileSeq), Kind: KindPest}
}

func setDraft(t *testing.T, g *Game, names ...string) {
	t.Helper()
	g.draft = g.draft[:0]
	for _, n := range names {
		g.draft = append(g.draft, plantTile(t, n))
	}
}

func expectKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	got, ok := KindOf(err)
	if !ok || got != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
}

func TestNewValidation(t *testing.T) {
	bad := testSettings()
	bad.GridSize = 1
	hugeDraft := testSettings()
	hugeDraft.DraftSize = 1000

	tests := []struct {
		name     string
		ids      []string
		settings Settings
	}{
		{"no players", nil, testSettings()},
		{"too many players", []string{"a", "b", "c", "d", "e", "f", "g"}, testSettings()},
		{"duplicate id", []string{"ann", "ann"}, testSettings()},
		{"empty id", []string{"ann", ""}, testSettings()},
		{"invalid settings", []string{"ann"}, bad},
		{"draft larger than deck", []string{"ann"}, hugeDraft},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.ids, tc.settings); err == nil {
				t.Error("expected construction error")
			}
		})
	}
}

func TestNewDeckComposition(t *testing.T) {
	for _, players := range [][]string{{"ann"}, {"ann", "bob"}, {"a", "b", "c", "d", "e", "f"}} {
		t.Run(fmt.Sprintf("%d players", len(players)), func(t *testing.T) {
			g, err := New(players, testSettings())
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			total := len(g.deck) + len(g.draft) + len(g.discard)
			want := (len(catalog)*copiesPerSpecies + pestsPerPlayer) * len(players)
			if total != want {
				t.Errorf("tile count = %d, expected %d", total, want)
			}

			pests := 0
			ids := make(map[string]bool)
			for _, group := range [][]*Tile{g.deck, g.draft, g.discard} {
				for _, tile := range group {
					if ids[tile.ID] {
						t.Fatalf("duplicate tile id %s", tile.ID)
					}
					ids[tile.ID] = true
					if tile.IsPest() {
						pests++
					}
				}
			}
			if pests != pestsPerPlayer*len(players) {
				t.Errorf("pest count = %d, expected %d", pests, pestsPerPlayer*len(players))
			}

			if len(g.draft) != g.settings.DraftSize {
				t.Errorf("draft size = %d, expected %d", len(g.draft), g.settings.DraftSize)
			}
			for _, p := range g.Players() {
				if p.PestToPlace != len(g.discard) {
					t.Errorf("%s pestToPlace = %d, expected %d", p.ID, p.PestToPlace, len(g.discard))
				}
			}
		})
	}
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	a, err := New([]string{"ann", "bob"}, testSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New([]string{"ann", "bob"}, testSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("same seed produced different games")
	}

	s := testSettings()
	s.Seed = 8
	c, err := New([]string{"ann", "bob"}, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if reflect.DeepEqual(a.Snapshot().Deck, c.Snapshot().Deck) {
		t.Error("different seeds produced the same deck")
	}
}

func TestDraftZoneNeverHoldsPests(t *testing.T) {
	// 2 players, 5x5 grid, cap 5, 3 infestations, draft 4.
	s := Settings{GridSize: 5, MaxResources: 5, MaxInfestations: 3, DraftSize: 4, TurnIncome: 1, PestsBlockActions: true}
	for seed := int64(1); seed <= 40; seed++ {
		s.Seed = seed
		g, err := New([]string{"ann", "bob"}, s)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if len(g.draft) != 4 {
			t.Fatalf("seed %d: draft size = %d, expected 4", seed, len(g.draft))
		}
		playRandom(t, g, newRand(seed), func() {
			for _, tile := range g.draft {
				if tile.IsPest() {
					t.Fatalf("seed %d: pest %s in draft zone", seed, tile.ID)
				}
			}
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	g := newTestGame(t, "ann")
	before := make(map[string]int)
	for _, tile := range g.deck {
		before[tile.ID]++
	}

	shuffled := append([]*Tile(nil), g.deck...)
	shuffle(shuffled, newRand(99))

	after := make(map[string]int)
	for _, tile := range shuffled {
		after[tile.ID]++
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("shuffle changed the multiset of tiles")
	}
}

func TestPlaceTile(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	setDraft(t, g, "Rose", "Fern", "Daisy", "Tree")
	ann, _ := g.Player("ann")

	if err := g.PlaceTile("ann", 1, 2, 3); err != nil {
		t.Fatalf("PlaceTile: %v", err)
	}

	tile := ann.Grid.At(2, 3)
	if tile == nil || tile.Name() != "Fern" {
		t.Fatalf("expected Fern at C4, got %v", tile)
	}
	if len(g.draft) != 3 {
		t.Errorf("draft size = %d, expected 3", len(g.draft))
	}
	if g.draft[1].Name() != "Daisy" {
		t.Errorf("draft order not preserved: %s", RenderDraft(g.draft))
	}
	if ann.CanPlace {
		t.Error("canPlace should be false after placing")
	}
	if ann.Score != 0 {
		t.Errorf("placement should not score, got %d", ann.Score)
	}
}

func TestPlaceTileErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, g *Game)
		player string
		index  int
		x, y   int
		want   ErrorKind
	}{
		{"unknown player", nil, "zed", 0, 0, 0, PlayerNotFound},
		{"not current player", nil, "bob", 0, 0, 0, NotCurrentPlayer},
		{"out of bounds x", nil, "ann", 0, 5, 0, OutOfBounds},
		{"out of bounds y", nil, "ann", 0, 0, -1, OutOfBounds},
		{"bad index", nil, "ann", 4, 0, 0, InvalidTileIndex},
		{"negative index", nil, "ann", -1, 0, 0, InvalidTileIndex},
		{"occupied", func(t *testing.T, g *Game) {
			g.players["ann"].Grid.set(1, 1, plantTile(t, "Rose"))
		}, "ann", 0, 1, 1, CellOccupied},
		{"occupied by pest", func(t *testing.T, g *Game) {
			g.players["ann"].Grid.set(1, 1, pestTile())
		}, "ann", 0, 1, 1, CellOccupied},
		{"already placed", func(t *testing.T, g *Game) {
			g.players["ann"].CanPlace = false
		}, "ann", 0, 0, 0, ActionAlreadyUsed},
		{"pests pending", func(t *testing.T, g *Game) {
			g.players["ann"].PestToPlace = 1
		}, "ann", 0, 0, 0, PestsPending},
		{"game over", func(t *testing.T, g *Game) {
			g.players["bob"].Infestation = 3
		}, "ann", 0, 0, 0, GameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "ann", "bob")
			setDraft(t, g, "Rose", "Fern", "Daisy", "Tree")
			if tc.setup != nil {
				tc.setup(t, g)
			}
			before := g.Snapshot()

			err := g.PlaceTile(tc.player, tc.index, tc.x, tc.y)
			expectKind(t, err, tc.want)

			if !reflect.DeepEqual(before, g.Snapshot()) {
				t.Error("failed placement changed game state")
			}
		})
	}
}

func TestPlacementEffects(t *testing.T) {
	tests := []struct {
		name  string
		plant string
		start Pool
		want  Pool
	}{
		{"spring gives water", "Spring", Pool{Water: 1, Light: 0, Compost: 0}, Pool{Water: 3, Light: 0, Compost: 0}},
		{"compost gives compost", "Compost", Pool{Water: 0, Light: 0, Compost: 0}, Pool{Water: 0, Light: 0, Compost: 1}},
		{"gain is capped", "Spring", Pool{Water: 4, Light: 0, Compost: 0}, Pool{Water: 5, Light: 0, Compost: 0}},
		{"no effect", "Rose", Pool{Water: 2, Light: 2, Compost: 2}, Pool{Water: 2, Light: 2, Compost: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "ann")
			setDraft(t, g, tc.plant)
			ann := g.players["ann"]
			ann.Resources = tc.start

			if err := g.PlaceTile("ann", 0, 0, 0); err != nil {
				t.Fatalf("PlaceTile: %v", err)
			}
			if !reflect.DeepEqual(ann.Resources, tc.want) {
				t.Errorf("resources = %v, expected %v", ann.Resources, tc.want)
			}
		})
	}
}

func TestPlacePest(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	ann := g.players["ann"]
	ann.PestToPlace = 2
	draft := len(g.draft)

	if err := g.PlacePest("ann", 3, 3); err != nil {
		t.Fatalf("PlacePest: %v", err)
	}
	if !ann.Grid.At(3, 3).IsPest() {
		t.Error("expected pest at D4")
	}
	if ann.PestToPlace != 1 {
		t.Errorf("pestToPlace = %d, expected 1", ann.PestToPlace)
	}
	if len(g.draft) != draft {
		t.Error("pest placement must not touch the draft zone")
	}
	if !ann.CanPlace {
		t.Error("pest placement must not use up the tile placement")
	}

	// Second pest gets a distinct id.
	if err := g.PlacePest("ann", 0, 0); err != nil {
		t.Fatalf("PlacePest: %v", err)
	}
	if ann.Grid.At(0, 0).ID == ann.Grid.At(3, 3).ID {
		t.Error("minted pests share an id")
	}

	err := g.PlacePest("ann", 1, 1)
	expectKind(t, err, InvalidTarget)
}

func TestPestOnPestIsIllegal(t *testing.T) {
	g := newTestGame(t, "ann")
	ann := g.players["ann"]
	ann.PestToPlace = 1
	ann.Grid.set(2, 2, pestTile())
	before := g.Snapshot()

	err := g.PlacePest("ann", 2, 2)
	expectKind(t, err, IllegalTarget)
	if !errors.Is(err, ErrIllegalTarget) {
		t.Error("errors.Is should match ErrIllegalTarget")
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("rejected pest changed game state")
	}
}

func TestPestDestroysPlant(t *testing.T) {
	tests := []struct {
		name      string
		plant     string
		grown     bool
		score     int
		wantScore int
	}{
		{"grown tree keeps growth bonus", "Tree", true, 5, 2},
		{"ungrown rose goes negative", "Rose", false, 0, -3},
		{"compost has no base", "Compost", true, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "ann")
			ann := g.players["ann"]
			victim := plantTile(t, tc.plant)
			victim.Grown = tc.grown
			ann.Grid.set(1, 1, victim)
			ann.Score = tc.score
			ann.PestToPlace = 1
			discard := len(g.discard)

			if err := g.PlacePest("ann", 1, 1); err != nil {
				t.Fatalf("PlacePest: %v", err)
			}
			if ann.Score != tc.wantScore {
				t.Errorf("score = %d, expected %d", ann.Score, tc.wantScore)
			}
			if !ann.Grid.At(1, 1).IsPest() {
				t.Error("pest should occupy the cell")
			}
			if len(g.discard) != discard+1 || g.discard[len(g.discard)-1] != victim {
				t.Error("destroyed plant should move to the discard pile")
			}
		})
	}
}

func TestInfestation(t *testing.T) {
	t.Run("one neighbor among many pests", func(t *testing.T) {
		g := newTestGame(t, "ann")
		ann := g.players["ann"]
		ann.Grid.set(0, 1, pestTile())
		ann.Grid.set(4, 4, pestTile())
		ann.Grid.set(3, 4, pestTile())
		ann.Grid.set(4, 3, pestTile())
		ann.PestToPlace = 1

		if err := g.PlacePest("ann", 1, 1); err != nil {
			t.Fatalf("PlacePest: %v", err)
		}
		if ann.Infestation != 1 {
			t.Errorf("infestation = %d, expected 1", ann.Infestation)
		}
	})

	t.Run("several neighbors still count once", func(t *testing.T) {
		g := newTestGame(t, "ann")
		ann := g.players["ann"]
		ann.Grid.set(1, 0, pestTile())
		ann.Grid.set(0, 1, pestTile())
		ann.Grid.set(2, 1, pestTile())
		ann.PestToPlace = 1

		if err := g.PlacePest("ann", 1, 1); err != nil {
			t.Fatalf("PlacePest: %v", err)
		}
		if ann.Infestation != 1 {
			t.Errorf("infestation = %d, expected 1", ann.Infestation)
		}
	})

	t.Run("isolated pest", func(t *testing.T) {
		g := newTestGame(t, "ann")
		ann := g.players["ann"]
		ann.Grid.set(4, 4, pestTile())
		ann.Grid.set(2, 2, plantTile(t, "Daisy"))
		ann.PestToPlace = 1

		if err := g.PlacePest("ann", 2, 1); err != nil {
			t.Fatalf("PlacePest: %v", err)
		}
		if ann.Infestation != 0 {
			t.Errorf("infestation = %d, expected 0", ann.Infestation)
		}
	})
}

func TestPlacementChangesExactlyOneThing(t *testing.T) {
	count := func(p *Player) int { return p.Grid.Filled() }

	g := newTestGame(t, "ann")
	ann := g.players["ann"]
	ann.PestToPlace = 1

	draft, pests, cells := len(g.draft), ann.PestToPlace, count(ann)
	if err := g.PlacePest("ann", 0, 0); err != nil {
		t.Fatalf("PlacePest: %v", err)
	}
	if len(g.draft) != draft || ann.PestToPlace != pests-1 || count(ann) != cells+1 {
		t.Errorf("pest placement: draft %d->%d, queue %d->%d, cells %d->%d",
			draft, len(g.draft), pests, ann.PestToPlace, cells, count(ann))
	}

	draft, pests, cells = len(g.draft), ann.PestToPlace, count(ann)
	if err := g.PlaceTile("ann", 0, 1, 0); err != nil {
		t.Fatalf("PlaceTile: %v", err)
	}
	if len(g.draft) != draft-1 || ann.PestToPlace != pests || count(ann) != cells+1 {
		t.Errorf("tile placement: draft %d->%d, queue %d->%d, cells %d->%d",
			draft, len(g.draft), pests, ann.PestToPlace, cells, count(ann))
	}
}

func TestDraftPick(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	setDraft(t, g, "Rose", "Fern")

	tile, err := g.DraftPick("ann", 1)
	if err != nil {
		t.Fatalf("DraftPick: %v", err)
	}
	if tile.Name() != "Fern" {
		t.Errorf("DraftPick = %s, expected Fern", tile.Name())
	}
	if len(g.draft) != 2 {
		t.Error("DraftPick must not remove the tile")
	}

	_, err = g.DraftPick("ann", 2)
	expectKind(t, err, InvalidTileIndex)
	_, err = g.DraftPick("bob", 0)
	expectKind(t, err, NotCurrentPlayer)
}

func TestPestsBlockActionsPolicy(t *testing.T) {
	for _, blocking := range []bool{true, false} {
		t.Run(fmt.Sprintf("blocking=%v", blocking), func(t *testing.T) {
			g := newTestGame(t, "ann")
			g.settings.PestsBlockActions = blocking
			setDraft(t, g, "Fern")
			ann := g.players["ann"]
			ann.Grid.set(0, 0, plantTile(t, "Fern"))
			ann.Resources[Water] = 1
			ann.PestToPlace = 1

			placeErr := g.PlaceTile("ann", 0, 1, 1)
			growErr := g.GrowPlant("ann", 0, 0)
			if blocking {
				expectKind(t, placeErr, PestsPending)
				expectKind(t, growErr, PestsPending)
				return
			}
			if placeErr != nil || growErr != nil {
				t.Errorf("non-blocking policy rejected actions: %v, %v", placeErr, growErr)
			}
		})
	}
}

func TestMaxDraftSizeLeavesDeck(t *testing.T) {
	s := testSettings()
	s.DraftSize = MaxDraftSize
	g, err := New([]string{"ann"}, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.IsGameOver() {
		t.Error("game over at construction")
	}
	if len(g.deck) == 0 {
		t.Error("draft emptied the deck")
	}
}
