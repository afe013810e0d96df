package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shared-garden/internal/storage"
)

const (
	scoreLimit    = 100
	scoreDateFmt  = "Jan 02 15:04"
	scoreChrome   = 8 // title, tabs, help and borders
	minTableLines = 3
)

// ScoreSource is the read side of storage.Store used by the scoreboard.
type ScoreSource interface {
	TopScores(limit int) ([]storage.ScoreEntry, error)
	AllPlayerStats() ([]storage.PlayerStats, error)
}

type scoreView int

const (
	viewTopScores scoreView = iota
	viewPlayers
	numScoreViews
)

func (v scoreView) String() string {
	if v == viewPlayers {
		return "Players"
	}
	return "Top Scores"
}

func (v scoreView) columns() []table.Column {
	if v == viewPlayers {
		return []table.Column{
			{Title: "Player", Width: 14},
			{Title: "Games", Width: 6},
			{Title: "Wins", Width: 6},
			{Title: "Best", Width: 6},
			{Title: "Avg", Width: 7},
			{Title: "Last", Width: 13},
		}
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Won", Width: 4},
		{Title: "Date", Width: 13},
	}
}

func (v scoreView) rows(src ScoreSource) ([]table.Row, error) {
	if src == nil {
		return nil, nil
	}
	var rows []table.Row
	switch v {
	case viewPlayers:
		stats, err := src.AllPlayerStats()
		if err != nil {
			return nil, err
		}
		for _, s := range stats {
			rows = append(rows, table.Row{
				s.PlayerID,
				strconv.Itoa(s.Games),
				strconv.Itoa(s.Wins),
				strconv.Itoa(s.HighScore),
				strconv.FormatFloat(s.AvgScore, 'f', 1, 64),
				s.LastPlayed.Format(scoreDateFmt),
			})
		}
	default:
		scores, err := src.TopScores(scoreLimit)
		if err != nil {
			return nil, err
		}
		for i, s := range scores {
			won := ""
			if s.Won {
				won = "*"
			}
			rows = append(rows, table.Row{
				"#" + strconv.Itoa(i+1),
				s.PlayerID,
				strconv.Itoa(s.Score),
				won,
				s.CreatedAt.Format(scoreDateFmt),
			})
		}
	}
	return rows, nil
}

type scoreKeys struct {
	Scroll key.Binding
	Switch key.Binding
	Close  key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Scroll, k.Switch, k.Close} }
func (k scoreKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var scoreboardKeys = scoreKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right"), key.WithHelp("tab", "switch page")),
	Close:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "close")),
}

// ScoreboardModel is a read-only leaderboard over recorded matches.
type ScoreboardModel struct {
	source  ScoreSource
	theme   Theme
	view    scoreView
	table   table.Model
	help    help.Model
	rows    []table.Row
	loadErr error
	width   int
	height  int
	done    bool
}

func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		theme:  DefaultTheme(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(height)
	m.reload()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(max(height-scoreChrome, minTableLines)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.
		Bold(false).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22"))
	t.SetStyles(styles)
	return t
}

func (m *ScoreboardModel) current() scoreView { return m.view }

// reload refills the table for the active page. Rows are cleared before the
// columns change so the table never holds rows wider than its columns.
func (m *ScoreboardModel) reload() {
	m.rows, m.loadErr = m.view.rows(m.source)
	m.table.SetRows(nil)
	m.table.SetColumns(m.view.columns())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-scoreChrome, minTableLines))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeys.Close):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeys.Switch):
			step := scoreView(1)
			if s := msg.String(); s == "shift+tab" || s == "left" {
				step = numScoreViews - 1
			}
			m.view = (m.view + step) % numScoreViews
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	body := m.table.View()
	switch {
	case m.loadErr != nil:
		body = m.theme.Error.Render("cannot load scores: " + m.loadErr.Error())
	case len(m.rows) == 0:
		body = m.theme.Spectator.Padding(2, 4).Render("No games recorded yet")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(body)

	sections := []string{
		m.theme.Title.Render("GARDEN LEADERBOARD"),
		m.tabs(),
		box,
		m.theme.Help.Render(m.help.View(scoreboardKeys)),
	}
	for i, s := range sections {
		sections[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}
	return strings.Join(sections, "\n")
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, 0, numScoreViews)
	for v := range numScoreViews {
		style := m.theme.Log.Padding(0, 1)
		if v == m.view {
			style = m.theme.Turn.Underline(true).Padding(0, 1)
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RunScoreboard shows the leaderboard full screen until it is closed.
func RunScoreboard(source ScoreSource, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(source, width, height), tea.WithAltScreen()).Run()
	return err
}
