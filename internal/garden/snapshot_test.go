package garden

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, g *Game) *Game {
	t.Helper()
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	restored, err := Restore(&s)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return restored
}

func TestSnapshotRoundTripPreservesLegalMoves(t *testing.T) {
	s := DefaultSettings()
	s.Seed = 12
	g, err := New([]string{"ann", "bob"}, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rng := newRand(5)

	for step := 0; step < 60 && !g.IsGameOver(); step++ {
		restored := roundTrip(t, g)
		cur := g.CurrentPlayer()

		want := g.LegalMoves(cur)
		got := restored.LegalMoves(cur)
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("step %d: legal moves differ after round trip", step)
		}

		c := want[rng.Intn(len(want))]
		a, b := Execute(g, c), Execute(restored, c)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("step %d: %s gave %+v and %+v", step, c, a, b)
		}
		if !reflect.DeepEqual(g.Snapshot(), restored.Snapshot()) {
			t.Fatalf("step %d: games diverged after %s", step, c)
		}
	}
}

func TestSnapshotFieldNames(t *testing.T) {
	g := newTestGame(t, "ann")
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{`"players"`, `"deck"`, `"draftZone"`, `"currentTurn"`, `"currentPlayer"`, `"log"`, `"order"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("snapshot JSON missing %s", field)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t, "ann")
	snap := g.Snapshot()
	setDraft(t, g, "Rose")
	if err := g.PlaceTile("ann", 0, 0, 0); err != nil {
		t.Fatalf("PlaceTile: %v", err)
	}
	if snap.Players["ann"].Grid[0][0] != nil {
		t.Error("snapshot aliases the live grid")
	}
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"pest in draft", func(s *Snapshot) {
			s.DraftZone = append(s.DraftZone, &TileView{ID: "p1", Type: KindPest})
		}},
		{"unknown plant", func(s *Snapshot) {
			s.Deck[0] = &TileView{ID: "x1", Type: KindPlant, Plant: "Orchid"}
		}},
		{"duplicate tile", func(s *Snapshot) {
			s.Deck = append(s.Deck, s.Deck[0])
		}},
		{"unknown current player", func(s *Snapshot) {
			s.CurrentPlayer = "zed"
		}},
		{"missing player", func(s *Snapshot) {
			delete(s.Players, "bob")
		}},
		{"player id differs from key", func(s *Snapshot) {
			s.Players["ann"].ID = "mallory"
		}},
		{"extra player", func(s *Snapshot) {
			s.Players["zed"] = s.Players["bob"]
		}},
		{"wrong grid size", func(s *Snapshot) {
			s.Players["ann"].Grid = s.Players["ann"].Grid[:3]
		}},
		{"resource over cap", func(s *Snapshot) {
			s.Players["ann"].Resources[Water] = 99
		}},
		{"zero turn", func(s *Snapshot) {
			s.CurrentTurn = 0
		}},
		{"bad settings", func(s *Snapshot) {
			s.Settings.DraftSize = 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, "ann", "bob")
			s := g.Snapshot()
			tc.mutate(s)
			if _, err := Restore(s); err == nil {
				t.Error("expected restore error")
			}
		})
	}
}
