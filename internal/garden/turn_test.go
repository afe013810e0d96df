package garden

import "testing"

func TestNextTurnRotation(t *testing.T) {
	g := newTestGame(t, "ann", "bob", "cid")

	want := []struct {
		player string
		turn   int
	}{
		{"bob", 1},
		{"cid", 1},
		{"ann", 2},
		{"bob", 2},
	}
	for _, w := range want {
		g.NextTurn()
		if g.CurrentPlayer() != w.player || g.CurrentTurn() != w.turn {
			t.Fatalf("after NextTurn: %s turn %d, expected %s turn %d",
				g.CurrentPlayer(), g.CurrentTurn(), w.player, w.turn)
		}
	}
}

func TestNextTurnResetsFlags(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	bob := g.players["bob"]
	bob.CanPlace = false
	bob.CanGrow = false
	bob.PestToPlace = 3

	g.NextTurn()

	if !bob.CanPlace || !bob.CanGrow {
		t.Error("new active player should be able to place and grow")
	}
	if bob.PestToPlace != 0 {
		t.Errorf("pestToPlace = %d, expected 0", bob.PestToPlace)
	}
}

func TestNextTurnDrawsPastPests(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	setDraft(t, g, "Rose", "Fern", "Daisy")

	rose := plantTile(t, "Rose")
	g.deck = append(g.deck, rose, pestTile(), pestTile())
	deck := len(g.deck)
	discard := len(g.discard)

	g.NextTurn()

	if len(g.draft) != 4 || g.draft[3] != rose {
		t.Fatalf("expected Rose appended to draft, got %s", RenderDraft(g.draft))
	}
	if len(g.deck) != deck-3 {
		t.Errorf("deck = %d, expected %d", len(g.deck), deck-3)
	}
	if len(g.discard) != discard+2 {
		t.Errorf("discard = %d, expected %d", len(g.discard), discard+2)
	}
	for _, p := range g.Players() {
		if p.PestToPlace != 2 {
			t.Errorf("%s pestToPlace = %d, expected 2", p.ID, p.PestToPlace)
		}
	}
}

func TestNextTurnKeepsDraftBounded(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	deck := len(g.deck)

	g.NextTurn()

	if len(g.draft) != g.settings.DraftSize {
		t.Errorf("draft = %d, expected %d", len(g.draft), g.settings.DraftSize)
	}
	if len(g.deck) != deck {
		t.Errorf("full draft should not draw, deck %d -> %d", deck, len(g.deck))
	}
}

func TestTurnIncome(t *testing.T) {
	s := testSettings()
	s.TurnIncome = 2
	g, err := New([]string{"ann", "bob"}, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ann, bob := g.players["ann"], g.players["bob"]

	// Turn 1, seat 0.
	if ann.Resources[Light] != 2 {
		t.Errorf("ann light = %d, expected 2", ann.Resources[Light])
	}
	g.NextTurn()
	// Turn 1, seat 1.
	if bob.Resources[Compost] != 2 {
		t.Errorf("bob compost = %d, expected 2", bob.Resources[Compost])
	}
	if g.IsGameOver() {
		t.Skip("seed ended the game early")
	}
	g.NextTurn()
	// Turn 2, seat 0.
	if ann.Resources[Compost] != 2 {
		t.Errorf("ann compost = %d, expected 2", ann.Resources[Compost])
	}
}

func TestNextTurnAfterGameOver(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	g.players["bob"].Infestation = g.settings.MaxInfestations

	if !g.NextTurn() {
		t.Fatal("NextTurn should report game over")
	}
	if g.CurrentPlayer() != "ann" {
		t.Error("NextTurn should not advance a finished game")
	}
}
