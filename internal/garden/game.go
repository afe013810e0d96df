package garden

import (
	"errors"
	"fmt"
	"time"
)

// Game is the aggregate root of one session.
type Game struct {
	settings Settings
	order    []string
	players  map[string]*Player

	deck    []*Tile
	draft   []*Tile
	discard []*Tile

	turn     int
	current  int // index into order
	log      []string
	nextMint int
}

// New starts a game for the given players, in turn order. A zero seed in
// settings is replaced with the current time.
func New(playerIDs []string, s Settings) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("garden: invalid settings: %w", err)
	}
	if len(playerIDs) < MinPlayers || len(playerIDs) > MaxPlayers {
		return nil, fmt.Errorf("garden: player count %d out of range %d..%d",
			len(playerIDs), MinPlayers, MaxPlayers)
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}

	g := &Game{
		settings: s,
		order:    make([]string, 0, len(playerIDs)),
		players:  make(map[string]*Player, len(playerIDs)),
		turn:     1,
	}
	for _, id := range playerIDs {
		if id == "" {
			return nil, errors.New("garden: empty player id")
		}
		if _, dup := g.players[id]; dup {
			return nil, fmt.Errorf("garden: duplicate player id %q", id)
		}
		g.order = append(g.order, id)
		g.players[id] = newPlayer(id, s)
	}

	deck, err := generateDeck(len(playerIDs), newRand(s.Seed))
	if err != nil {
		return nil, err
	}
	g.deck = deck

	g.logf("Game started with %d players", len(g.order))
	g.beginTurn()
	g.replenish()
	return g, nil
}

// Settings returns the session settings.
func (g *Game) Settings() Settings { return g.settings }

// Order returns player ids in turn order.
func (g *Game) Order() []string {
	return append([]string(nil), g.order...)
}

// Player returns the state for a player id.
func (g *Game) Player(id string) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

// Players returns every player in turn order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.order))
	for i, id := range g.order {
		out[i] = g.players[id]
	}
	return out
}

// DraftZone returns the pickable tiles. The slice is a copy.
func (g *Game) DraftZone() []*Tile {
	return append([]*Tile(nil), g.draft...)
}

// DeckSize returns the number of tiles left in the draw pile.
func (g *Game) DeckSize() int { return len(g.deck) }

// DiscardSize returns the number of discarded tiles.
func (g *Game) DiscardSize() int { return len(g.discard) }

// CurrentTurn returns the round number, starting at 1.
func (g *Game) CurrentTurn() int { return g.turn }

// CurrentPlayer returns the id of the active player.
func (g *Game) CurrentPlayer() string { return g.order[g.current] }

// Log returns the action log. The slice is a copy.
func (g *Game) Log() []string {
	return append([]string(nil), g.log...)
}

func (g *Game) logf(format string, args ...any) {
	g.log = append(g.log, fmt.Sprintf("[Turn %d] ", g.turn)+fmt.Sprintf(format, args...))
}
