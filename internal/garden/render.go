package garden

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/shared-garden/internal/core"
)

// RenderBoard draws a player's header and grid as plain text lines.
// Grown plants are upper case, pests are X and empty cells are dots.
func RenderBoard(p *Player) []string {
	size := p.Grid.Size()
	lines := []string{
		"Player " + p.ID,
		fmt.Sprintf("Pests: %d  Water: %d  Light: %d  Compost: %d",
			p.PestToPlace, p.Resources[Water], p.Resources[Light], p.Resources[Compost]),
		fmt.Sprintf("Score: %d | Infestations: %d", p.Score, p.Infestation),
	}

	pad := len(strconv.Itoa(size)) + 1
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", pad))
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%2s ", core.ColumnLabel(x))
	}
	lines = append(lines, strings.TrimRight(sb.String(), " "))

	for y := 0; y < size; y++ {
		sb.Reset()
		fmt.Fprintf(&sb, "%-*d", pad, y+1)
		for x := 0; x < size; x++ {
			fmt.Fprintf(&sb, " %c ", p.Grid.At(x, y).Symbol())
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

// RenderDraft draws the draft zone as "[0:Rose] [1:Fern]".
func RenderDraft(tiles []*Tile) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = fmt.Sprintf("[%d:%s]", i, t.Name())
	}
	return strings.Join(parts, " ")
}

// Render draws the whole table: draft zone, boards side by side, turn line
// and the last few log entries.
func Render(g *Game) string {
	var out []string
	out = append(out, "Draft Zone:", RenderDraft(g.draft), "")

	boards := make([][]string, 0, len(g.order))
	height := 0
	for _, p := range g.Players() {
		b := RenderBoard(p)
		boards = append(boards, b)
		height = max(height, len(b))
	}
	for i := 0; i < height; i++ {
		cols := make([]string, len(boards))
		for j, b := range boards {
			line := ""
			if i < len(b) {
				line = b[i]
			}
			cols[j] = fmt.Sprintf("%-30s", line)
		}
		out = append(out, strings.TrimRight(strings.Join(cols, "    "), " "))
	}

	out = append(out, "", fmt.Sprintf("Turn %d - Current Player: %s", g.turn, g.CurrentPlayer()))
	if len(g.log) > 0 {
		out = append(out, "", "Recent actions:")
		out = append(out, g.log[max(0, len(g.log)-3):]...)
	}
	return strings.Join(out, "\n")
}
