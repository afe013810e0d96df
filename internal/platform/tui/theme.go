package tui

import "github.com/charmbracelet/lipgloss"

// Theme contains the lipgloss styles used around the board.
type Theme struct {
	Title     lipgloss.Style
	Turn      lipgloss.Style
	You       lipgloss.Style
	TileInfo  lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Log       lipgloss.Style
	Winner    lipgloss.Style
	Help      lipgloss.Style
	Spectator lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("22")).
			Padding(0, 1),
		Turn:     lipgloss.NewStyle().Bold(true),
		You:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		TileInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Log:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Winner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 2),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spectator: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}
