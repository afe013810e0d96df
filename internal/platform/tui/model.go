package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shared-garden/internal/core"
	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

// requestTimeout bounds every call into the host.
const requestTimeout = 5 * time.Second

// Host is the part of multiplayer.Host the client needs.
type Host interface {
	Do(ctx context.Context, cmd garden.Command) (garden.Result, error)
	Subscribe(ctx context.Context, s multiplayer.SessionHandle) error
	Unsubscribe(id multiplayer.SessionID)
}

// ModelConfig configures a client model.
type ModelConfig struct {
	SessionID multiplayer.SessionID

	// Seats lists the players this client may act for. Hot-seat play lists
	// every player, an SSH session one, a spectator none.
	Seats  []string
	Buffer int
	Screen core.RuntimeConfig
}

// Model is the Bubble Tea model for one garden client. It only ever reads
// state from snapshot frames and changes it through host commands.
type Model struct {
	host    Host
	codec   *snapshot.Codec
	session *multiplayer.ChannelSession
	seats   []string
	keys    KeyMap
	help    help.Model
	theme   Theme
	screen  *core.Screen
	width   int

	game    *garden.Game // rebuilt from the latest frame
	seq     uint64
	cursor  core.Coord
	tile    int
	message string
	failed  bool
	ended   bool
	result  string

	quitting bool
	err      error
}

// NewModel creates a client model. The session is subscribed in Init.
func NewModel(host Host, codec *snapshot.Codec, cfg ModelConfig) Model {
	if cfg.Screen.ScreenW <= 0 {
		cfg.Screen = core.DefaultConfig()
	}
	h := help.New()
	h.Width = cfg.Screen.ScreenW
	return Model{
		host:    host,
		codec:   codec,
		session: multiplayer.NewChannelSession(cfg.SessionID, cfg.Buffer),
		seats:   slices.Clone(cfg.Seats),
		keys:    DefaultKeyMap(),
		help:    h,
		theme:   DefaultTheme(),
		screen:  core.NewScreen(cfg.Screen.ScreenW, 1),
		width:   cfg.Screen.ScreenW,
	}
}

// Init subscribes to the host.
func (m Model) Init() tea.Cmd {
	host, session := m.host, m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return subscribedMsg{err: host.Subscribe(ctx, session)}
	}
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case subscribedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("cannot join match: %w", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.session)

	case eventMsg:
		m.handleEvent(msg.evt)
		return m, waitForEvent(m.session)

	case resultMsg:
		m.handleResult(msg)
		return m, nil

	case sessionClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) handleEvent(evt multiplayer.SessionEvent) {
	switch e := evt.(type) {
	case multiplayer.SnapshotEvent:
		if e.Seq <= m.seq {
			return
		}
		frame, err := m.codec.DecodeFrame(e.Data)
		if err != nil {
			m.setMessage(fmt.Sprintf("bad frame %d: %v", e.Seq, err), true)
			return
		}
		g, err := garden.Restore(frame.State)
		if err != nil {
			m.setMessage(fmt.Sprintf("bad state %d: %v", e.Seq, err), true)
			return
		}
		m.game = g
		m.seq = e.Seq
		if frame.Type == snapshot.FrameEnd {
			m.ended = true
			m.result = endText(frame.Reason, frame.Winner)
		}
		m.clampSelection()

	case multiplayer.MatchEndedEvent:
		m.ended = true
		m.result = endText(e.Reason.String(), e.Winner)
	}
}

func endText(reason, winner string) string {
	switch {
	case reason == multiplayer.MatchEndReasonCancelled.String():
		return "Match cancelled"
	case winner != "":
		return "Game over - " + winner + " wins!"
	default:
		return "Game over - no winner"
	}
}

func (m *Model) handleResult(msg resultMsg) {
	switch {
	case msg.err != nil:
		m.setMessage(msg.err.Error(), true)
	case !msg.res.OK:
		m.setMessage(msg.res.Reason, true)
	default:
		m.setMessage(msg.cmd.String(), false)
	}
}

func (m *Model) setMessage(text string, failed bool) {
	m.message = text
	m.failed = failed
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.host.Unsubscribe(m.session.ID())
		m.session.Close()
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionNone:
		return m, nil
	}

	if m.game == nil {
		return m, nil
	}
	if d, ok := action.Move(); ok {
		size := m.game.Settings().GridSize
		next := m.cursor.Add(d)
		m.cursor = core.Coord{X: core.Clamp(next.X, 0, size-1), Y: core.Clamp(next.Y, 0, size-1)}
		return m, nil
	}
	if n := len(m.game.DraftZone()); n > 0 {
		switch action {
		case core.ActionNextTile:
			m.tile = (m.tile + 1) % n
			return m, nil
		case core.ActionPrevTile:
			m.tile = (m.tile + n - 1) % n
			return m, nil
		}
	}

	player, ok := m.actor()
	if !ok {
		m.setMessage(m.waitingText(), true)
		return m, nil
	}
	cmd, ok := m.command(action, player)
	if !ok {
		return m, nil
	}
	return m, m.send(cmd)
}

// command builds the engine command for an action.
func (m Model) command(action core.Action, player string) (garden.Command, bool) {
	x, y := m.cursor.X, m.cursor.Y
	switch action {
	case core.ActionPlace:
		// Owed pests take over Enter only while they block other actions.
		if p, ok := m.game.Player(player); ok && p.PestToPlace > 0 && m.game.Settings().PestsBlockActions {
			return garden.Command{Type: garden.CmdPlacePest, Player: player, X: x, Y: y}, true
		}
		return garden.Command{Type: garden.CmdPlaceTile, Player: player, Index: m.tile, X: x, Y: y}, true
	case core.ActionPest:
		return garden.Command{Type: garden.CmdPlacePest, Player: player, X: x, Y: y}, true
	case core.ActionGrow:
		return garden.Command{Type: garden.CmdGrowPlant, Player: player, X: x, Y: y}, true
	case core.ActionEndTurn:
		return garden.Command{Type: garden.CmdNextTurn, Player: player}, true
	}
	return garden.Command{}, false
}

func (m Model) send(cmd garden.Command) tea.Cmd {
	host := m.host
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := host.Do(ctx, cmd)
		return resultMsg{cmd: cmd, res: res, err: err}
	}
}

// actor returns the player this client may act for right now.
func (m Model) actor() (string, bool) {
	if m.game == nil || m.ended {
		return "", false
	}
	cur := m.game.CurrentPlayer()
	return cur, slices.Contains(m.seats, cur)
}

// viewer returns the player whose board carries the cursor.
func (m Model) viewer() string {
	if p, ok := m.actor(); ok {
		return p
	}
	if len(m.seats) > 0 {
		return m.seats[0]
	}
	return ""
}

func (m Model) waitingText() string {
	if m.ended {
		return "the game has ended"
	}
	if len(m.seats) == 0 {
		return "spectators cannot play"
	}
	return fmt.Sprintf("waiting for %s", m.game.CurrentPlayer())
}

func (m *Model) clampSelection() {
	size := m.game.Settings().GridSize
	m.cursor.X = core.Clamp(m.cursor.X, 0, size-1)
	m.cursor.Y = core.Clamp(m.cursor.Y, 0, size-1)
	m.tile = core.Clamp(m.tile, 0, max(0, len(m.game.DraftZone())-1))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.game == nil {
		return m.theme.Spectator.Render("Joining match...")
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("SHARED GARDEN"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n\n")

	turn := fmt.Sprintf("Turn %d - Current Player: %s", m.game.CurrentTurn(), m.game.CurrentPlayer())
	b.WriteString(m.theme.Turn.Render(turn))
	switch {
	case len(m.seats) == 0:
		b.WriteString(m.theme.Spectator.Render("  (spectating)"))
	default:
		if _, ok := m.actor(); ok {
			b.WriteString(m.theme.You.Render("  your move"))
		}
	}
	b.WriteString("\n")

	if info := m.tileInfo(); info != "" {
		b.WriteString(m.theme.TileInfo.Render(info))
		b.WriteString("\n")
	}
	if m.message != "" {
		style := m.theme.Info
		if m.failed {
			style = m.theme.Error
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}

	if log := m.game.Log(); len(log) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Log.Render(strings.Join(log[max(0, len(log)-3):], "\n")))
		b.WriteString("\n")
	}

	if m.ended {
		b.WriteString("\n")
		b.WriteString(m.theme.Winner.Render(m.result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTable draws the draft zone and every board onto the screen buffer.
func (m Model) renderTable() string {
	players := m.game.Players()
	viewer := m.viewer()

	boards := make([]boardView, len(players))
	for i, p := range players {
		boards[i] = boardView{player: p, current: p.ID == m.game.CurrentPlayer()}
		if p.ID == viewer {
			cursor := m.cursor
			boards[i].cursor = &cursor
		}
	}

	size := m.game.Settings().GridSize
	m.screen.Resize(max(m.width, boardsWidth(boards), 1), size+6)
	m.screen.Clear()
	drawDraft(m.screen, 0, m.game.DraftZone(), m.tile)
	drawBoards(m.screen, 2, boards)

	lines := strings.Split(RenderScreen(m.screen), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// tileInfo describes the selected draft tile.
func (m Model) tileInfo() string {
	draft := m.game.DraftZone()
	if m.tile >= len(draft) || draft[m.tile].Plant == nil {
		return ""
	}
	def := draft[m.tile].Plant
	return fmt.Sprintf("%s (%c)  grow: %s  base %d  %s", def.Name, def.Symbol, def.Cost, def.BaseScore, def.Description)
}

// Run starts a local Bubble Tea program for the model.
func Run(host Host, codec *snapshot.Codec, cfg ModelConfig) error {
	p := tea.NewProgram(
		NewModel(host, codec, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
