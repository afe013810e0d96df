package garden

import "github.com/vovakirdan/shared-garden/internal/core"

// Grid is a square board of optional tiles, indexed [y][x].
type Grid struct {
	size  int
	cells [][]*Tile
}

// NewGrid creates an empty grid with the given edge length.
func NewGrid(size int) *Grid {
	cells := make([][]*Tile, size)
	for y := range cells {
		cells[y] = make([]*Tile, size)
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the edge length.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return core.Coord{X: x, Y: y}.InSquare(g.size)
}

// At returns the tile at (x, y), or nil if the cell is empty or outside.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y][x]
}

func (g *Grid) set(x, y int, t *Tile) {
	g.cells[y][x] = t
}

// Neighborhood returns the orthogonal surroundings of (x, y).
// Cells outside the grid are ignored entirely.
func (g *Grid) Neighborhood(x, y int) Neighborhood {
	var n Neighborhood
	for _, c := range (core.Coord{X: x, Y: y}).Neighbors() {
		if !c.InSquare(g.size) {
			continue
		}
		if t := g.cells[c.Y][c.X]; t != nil {
			n.Tiles = append(n.Tiles, t)
		} else {
			n.Open++
		}
	}
	return n
}

// PestNeighbors counts orthogonal neighbors of (x, y) holding a pest.
func (g *Grid) PestNeighbors(x, y int) int {
	count := 0
	for _, t := range g.Neighborhood(x, y).Tiles {
		if t.IsPest() {
			count++
		}
	}
	return count
}

// Full reports whether every cell is occupied.
func (g *Grid) Full() bool {
	return g.Filled() == g.size*g.size
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int {
	count := 0
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil {
				count++
			}
		}
	}
	return count
}
