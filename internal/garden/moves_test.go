package garden

import (
	"math/rand"
	"testing"
)

// playRandom plays legal moves chosen by rng until the game ends, calling
// check after every command.
func playRandom(t *testing.T, g *Game, rng *rand.Rand, check func()) {
	t.Helper()
	check()
	for step := 0; step < 20000; step++ {
		if g.IsGameOver() {
			return
		}
		moves := g.LegalMoves(g.CurrentPlayer())
		if len(moves) == 0 {
			t.Fatalf("active player %s has no moves", g.CurrentPlayer())
		}

		c := moves[len(moves)-1]
		if len(moves) > 1 && rng.Intn(5) != 0 {
			c = moves[rng.Intn(len(moves)-1)]
		}
		if res := Execute(g, c); !res.OK {
			t.Fatalf("legal move %s rejected: %s", c, res.Reason)
		}
		check()
	}
	t.Fatal("game did not finish")
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		s := DefaultSettings()
		s.Seed = seed
		g, err := New([]string{"ann", "bob", "cid"}, s)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		infestation := make(map[string]int)
		playRandom(t, g, newRand(seed*31), func() {
			if len(g.draft) > s.DraftSize {
				t.Fatalf("draft zone grew to %d", len(g.draft))
			}
			for _, p := range g.Players() {
				for _, r := range Resources {
					if p.Resources[r] < 0 || p.Resources[r] > s.MaxResources {
						t.Fatalf("%s %s = %d out of range", p.ID, r, p.Resources[r])
					}
				}
				if p.Infestation < infestation[p.ID] {
					t.Fatalf("%s infestation decreased", p.ID)
				}
				infestation[p.ID] = p.Infestation
			}
		})

		if !g.IsGameOver() {
			t.Fatalf("seed %d: game should be over", seed)
		}
		if _, ok := g.Winner(); !ok {
			t.Fatalf("seed %d: finished game has no winner", seed)
		}
	}
}

func TestLegalMovesMatchRules(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	setDraft(t, g, "Rose", "Fern")
	ann := g.players["ann"]
	ann.Grid.set(0, 0, plantTile(t, "Fern"))
	ann.Grid.set(1, 0, plantTile(t, "Tree"))
	ann.Grid.set(2, 0, pestTile())
	ann.Resources = Pool{Water: 1, Light: 0, Compost: 0}

	legal := make(map[Command]bool)
	for _, c := range g.LegalMoves("ann") {
		legal[c] = true
	}

	size := ann.Grid.Size()
	var candidates []Command
	for y := -1; y <= size; y++ {
		for x := -1; x <= size; x++ {
			candidates = append(candidates,
				Command{Type: CmdGrowPlant, Player: "ann", X: x, Y: y},
				Command{Type: CmdPlacePest, Player: "ann", X: x, Y: y})
			for i := -1; i <= len(g.draft); i++ {
				candidates = append(candidates, Command{Type: CmdPlaceTile, Player: "ann", Index: i, X: x, Y: y})
			}
		}
	}

	for _, c := range candidates {
		clone, err := Restore(g.Snapshot())
		if err != nil {
			t.Fatalf("Restore: %v", err)
		}
		res := Execute(clone, c)
		if res.OK != legal[c] {
			t.Errorf("%s: executed ok=%v (%s), listed legal=%v", c, res.OK, res.Reason, legal[c])
		}
	}

	if g.LegalMoves("bob") != nil {
		t.Error("inactive player should have no moves")
	}
}

func TestLegalMovesWithPendingPests(t *testing.T) {
	g := newTestGame(t, "ann")
	ann := g.players["ann"]
	ann.PestToPlace = 1
	ann.Grid.set(0, 0, pestTile())

	moves := g.LegalMoves("ann")
	cells := ann.Grid.Size() * ann.Grid.Size()
	// Every non-pest cell, plus nextTurn.
	if len(moves) != cells-1+1 {
		t.Fatalf("got %d moves, expected %d", len(moves), cells)
	}
	for _, c := range moves[:len(moves)-1] {
		if c.Type != CmdPlacePest {
			t.Fatalf("unexpected %s while pests are pending", c)
		}
	}
	if moves[len(moves)-1].Type != CmdNextTurn {
		t.Error("nextTurn should be the last move")
	}
}

func TestLegalMovesOmitDraftPreview(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	for _, c := range g.LegalMoves("ann") {
		if c.Type == CmdDraftPick || !c.Mutates() {
			t.Fatalf("LegalMoves listed read-only command %s", c)
		}
	}
}
