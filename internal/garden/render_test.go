package garden

import (
	"strings"
	"testing"
)

func TestTileSymbol(t *testing.T) {
	grown := plantTile(t, "Rose")
	grown.Grown = true

	tests := []struct {
		name string
		tile *Tile
		want rune
	}{
		{"empty", nil, '.'},
		{"pest", pestTile(), 'X'},
		{"ungrown", plantTile(t, "Rose"), 'r'},
		{"grown", grown, 'R'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tile.Symbol(); got != tc.want {
				t.Errorf("Symbol() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, "ann")
	ann := g.players["ann"]
	tree := plantTile(t, "Tree")
	tree.Grown = true
	ann.Grid.set(0, 0, tree)
	ann.Grid.set(4, 0, plantTile(t, "Daisy"))
	ann.Grid.set(2, 4, pestTile())
	ann.Score = 3
	ann.Resources = Pool{Water: 1, Light: 2, Compost: 0}

	want := []string{
		"Player ann",
		"Pests: 0  Water: 1  Light: 2  Compost: 0",
		"Score: 3 | Infestations: 0",
		"   A  B  C  D  E",
		"1  T  .  .  .  d",
		"2  .  .  .  .  .",
		"3  .  .  .  .  .",
		"4  .  .  .  .  .",
		"5  .  .  X  .  .",
	}
	got := RenderBoard(ann)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("RenderBoard:\n%s\nexpected:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestRenderDraft(t *testing.T) {
	tiles := []*Tile{plantTile(t, "Rose"), plantTile(t, "Fern")}
	if got := RenderDraft(tiles); got != "[0:Rose] [1:Fern]" {
		t.Errorf("RenderDraft() = %q", got)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "ann", "bob")
	out := Render(g)
	for _, want := range []string{"Draft Zone:", "Player ann", "Player bob", "Turn 1 - Current Player: ann", "Recent actions:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
}
