// Package core provides fundamental types and utilities shared by the garden
// engine and its collaborators. It has no external dependencies (especially no
// Bubble Tea) so engine logic stays pure and testable.
package core

import "strconv"

// Coord is a cell position on a square grid. X is the column, Y the row.
type Coord struct {
	X, Y int
}

// Orthogonal lists the four orthogonal offsets in a fixed order:
// up, down, left, right.
var Orthogonal = [4]Coord{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Neighbors returns the four orthogonal neighbors of c, in Orthogonal order.
// Callers filter out-of-bounds coordinates themselves.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, d := range Orthogonal {
		out[i] = c.Add(d)
	}
	return out
}

// InSquare reports whether c lies inside a size x size grid anchored at (0, 0).
func (c Coord) InSquare(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// Label returns the human-facing cell name, e.g. (1, 2) -> "B3".
func (c Coord) Label() string {
	return ColumnLabel(c.X) + strconv.Itoa(c.Y+1)
}

// ColumnLabel returns the spreadsheet-style letter for column x (0 -> "A").
// Columns past Z wrap to "AA", "AB", ...
func ColumnLabel(x int) string {
	if x < 0 {
		return "?"
	}
	label := ""
	for {
		label = string(rune('A'+x%26)) + label
		x = x/26 - 1
		if x < 0 {
			return label
		}
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
