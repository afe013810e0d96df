package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shared-garden/internal/core"
	"github.com/vovakirdan/shared-garden/internal/garden"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// speciesColors gives every plant a stable color on the board.
var speciesColors = map[string]core.Color{
	"Lavender":   core.ColorMagenta,
	"Sunflower":  core.ColorYellow,
	"Mushroom":   core.ColorBrown,
	"Tree":       core.ColorGreen,
	"Daisy":      core.ColorWhite,
	"Compost":    core.ColorBrown,
	"Spring":     core.ColorCyan,
	"Rose":       core.ColorRed,
	"Fern":       core.ColorGreen,
	"Wildflower": core.ColorMagenta,
	"Cactus":     core.ColorBlue,
}

// boardGap separates boards drawn side by side.
const boardGap = 4

// tileColor picks the color of a grid cell.
func tileColor(t *garden.Tile) core.Color {
	switch {
	case t == nil:
		return core.ColorGray
	case t.IsPest():
		return core.ColorBrightRed
	case t.Grown:
		return core.ColorBrightGreen
	}
	if c, ok := speciesColors[t.Name()]; ok {
		return c
	}
	return core.ColorDefault
}

// boardView describes how one board is drawn.
type boardView struct {
	player  *garden.Player
	current bool        // the player whose turn it is
	cursor  *core.Coord // nil when the board has no cursor
}

func boardWidth(p *garden.Player) int {
	width := 0
	for _, l := range garden.RenderBoard(p) {
		width = max(width, len([]rune(l)))
	}
	return width
}

// boardsWidth is the screen width drawBoards needs.
func boardsWidth(boards []boardView) int {
	total := 0
	for _, b := range boards {
		total += boardWidth(b.player) + boardGap
	}
	return total
}

// drawBoards lays out boards side by side starting at row top and returns
// the number of rows used. Text comes from garden.RenderBoard; grid cells
// are recolored in place.
func drawBoards(s *core.Screen, top int, boards []boardView) int {
	left, height := 0, 0
	for _, b := range boards {
		lines := garden.RenderBoard(b.player)
		width := boardWidth(b.player)

		header := core.ColorWhite
		if b.current {
			header = core.ColorBrightGreen
		}
		for i, l := range lines {
			c := core.ColorDefault
			switch {
			case i == 0:
				c = header
			case i == 3:
				c = core.ColorGray
			}
			s.DrawText(left, top+i, l, c)
		}

		size := b.player.Grid.Size()
		pad := len(lines[3]) - len(strings.TrimLeft(lines[3], " ")) - 1
		for y := 0; y < size; y++ {
			row := top + 4 + y
			s.DrawText(left, row, lines[4+y][:pad], core.ColorGray)
			for x := 0; x < size; x++ {
				t := b.player.Grid.At(x, y)
				col := left + pad + 3*x
				s.Set(col+1, row, t.Symbol(), tileColor(t))
				if b.cursor != nil && b.cursor.X == x && b.cursor.Y == y {
					s.Set(col, row, '[', core.ColorBrightYellow)
					s.Set(col+2, row, ']', core.ColorBrightYellow)
				}
			}
		}

		left += width + boardGap
		height = max(height, len(lines))
	}
	return height
}

// drawDraft writes the draft zone on one row, highlighting the selected
// tile.
func drawDraft(s *core.Screen, row int, draft []*garden.Tile, selected int) {
	x := s.DrawText(0, row, "Draft: ", core.ColorGray)
	if len(draft) == 0 {
		s.DrawText(x, row, "(empty)", core.ColorGray)
		return
	}
	for i, t := range draft {
		c := tileColor(t)
		if i == selected {
			c = core.ColorBrightYellow
		}
		x = s.DrawText(x, row, garden.RenderDraft([]*garden.Tile{t}), c)
		x = s.DrawText(x, row, " ", core.ColorDefault)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
