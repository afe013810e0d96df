package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the garden renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorBrightRed
	ColorBlue
	ColorCyan
	ColorMagenta
	ColorBrown
	ColorGray
	ColorWhite
)
