package garden

import (
	"errors"
	"fmt"
)

// TileView is the serialized form of a tile.
type TileView struct {
	ID    string   `json:"id"`
	Type  TileKind `json:"type"`
	Plant string   `json:"plant,omitempty"`
	Grown bool     `json:"grown,omitempty"`
}

// PlayerView is the serialized form of a player. Grid rows are indexed
// [y][x]; empty cells are null.
type PlayerView struct {
	ID          string        `json:"id"`
	Grid        [][]*TileView `json:"grid"`
	Score       int           `json:"score"`
	Resources   Pool          `json:"resources"`
	Infestation int           `json:"infestation"`
	CanPlace    bool          `json:"canPlace"`
	CanGrow     bool          `json:"canGrow"`
	PestToPlace int           `json:"pestToPlace"`
}

// Snapshot is a deep, self-contained copy of a game. It shares no memory
// with the Game it came from.
type Snapshot struct {
	Settings      Settings               `json:"settings"`
	Order         []string               `json:"order"`
	Players       map[string]*PlayerView `json:"players"`
	Deck          []*TileView            `json:"deck"`
	DraftZone     []*TileView            `json:"draftZone"`
	Discard       []*TileView            `json:"discard"`
	CurrentTurn   int                    `json:"currentTurn"`
	CurrentPlayer string                 `json:"currentPlayer"`
	Log           []string               `json:"log"`
	NextMint      int                    `json:"nextMint"`
}

func viewTile(t *Tile) *TileView {
	if t == nil {
		return nil
	}
	v := &TileView{ID: t.ID, Type: t.Kind, Grown: t.Grown}
	if t.IsPlant() {
		v.Plant = t.Plant.Name
	}
	return v
}

func viewTiles(tiles []*Tile) []*TileView {
	out := make([]*TileView, len(tiles))
	for i, t := range tiles {
		out[i] = viewTile(t)
	}
	return out
}

// Snapshot captures the full game state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Settings:      g.settings,
		Order:         g.Order(),
		Players:       make(map[string]*PlayerView, len(g.players)),
		Deck:          viewTiles(g.deck),
		DraftZone:     viewTiles(g.draft),
		Discard:       viewTiles(g.discard),
		CurrentTurn:   g.turn,
		CurrentPlayer: g.CurrentPlayer(),
		Log:           g.Log(),
		NextMint:      g.nextMint,
	}
	for _, p := range g.Players() {
		size := p.Grid.Size()
		grid := make([][]*TileView, size)
		for y := range grid {
			grid[y] = make([]*TileView, size)
			for x := range grid[y] {
				grid[y][x] = viewTile(p.Grid.At(x, y))
			}
		}
		s.Players[p.ID] = &PlayerView{
			ID:          p.ID,
			Grid:        grid,
			Score:       p.Score,
			Resources:   p.Resources.Clone(),
			Infestation: p.Infestation,
			CanPlace:    p.CanPlace,
			CanGrow:     p.CanGrow,
			PestToPlace: p.PestToPlace,
		}
	}
	return s
}

// restorer tracks ids while rebuilding tiles so a tile cannot end up in two
// containers.
type restorer struct {
	seen map[string]struct{}
}

func (r *restorer) tile(v *TileView) (*Tile, error) {
	if v == nil {
		return nil, errors.New("missing tile")
	}
	if v.ID == "" {
		return nil, errors.New("tile without id")
	}
	if _, dup := r.seen[v.ID]; dup {
		return nil, fmt.Errorf("tile %s appears twice", v.ID)
	}
	r.seen[v.ID] = struct{}{}

	switch v.Type {
	case KindPest:
		return &Tile{ID: v.ID, Kind: KindPest}, nil
	case KindPlant:
		def, ok := LookupPlant(v.Plant)
		if !ok {
			return nil, fmt.Errorf("tile %s: unknown plant %q", v.ID, v.Plant)
		}
		return &Tile{ID: v.ID, Kind: KindPlant, Plant: def, Grown: v.Grown}, nil
	default:
		return nil, fmt.Errorf("tile %s: unknown type %q", v.ID, v.Type)
	}
}

func (r *restorer) tiles(vs []*TileView) ([]*Tile, error) {
	out := make([]*Tile, 0, len(vs))
	for _, v := range vs {
		t, err := r.tile(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Restore rebuilds a game from a snapshot. Play resumes exactly where the
// snapshot was taken.
func Restore(s *Snapshot) (*Game, error) {
	if s == nil {
		return nil, errors.New("garden: nil snapshot")
	}
	if err := s.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("garden: restore: invalid settings: %w", err)
	}
	if len(s.Order) < MinPlayers || len(s.Order) > MaxPlayers {
		return nil, fmt.Errorf("garden: restore: player count %d out of range", len(s.Order))
	}
	if s.CurrentTurn < 1 {
		return nil, fmt.Errorf("garden: restore: turn %d must be at least 1", s.CurrentTurn)
	}
	if s.NextMint < 0 {
		return nil, fmt.Errorf("garden: restore: negative mint counter %d", s.NextMint)
	}

	g := &Game{
		settings: s.Settings,
		order:    make([]string, 0, len(s.Order)),
		players:  make(map[string]*Player, len(s.Order)),
		turn:     s.CurrentTurn,
		current:  -1,
		log:      append([]string(nil), s.Log...),
		nextMint: s.NextMint,
	}
	r := &restorer{seen: make(map[string]struct{})}

	for i, id := range s.Order {
		pv, ok := s.Players[id]
		if !ok || pv == nil {
			return nil, fmt.Errorf("garden: restore: player %q missing", id)
		}
		if pv.ID != id {
			return nil, fmt.Errorf("garden: restore: player %q carries id %q", id, pv.ID)
		}
		if _, dup := g.players[id]; dup {
			return nil, fmt.Errorf("garden: restore: duplicate player id %q", id)
		}
		p, err := restorePlayer(r, pv, s.Settings)
		if err != nil {
			return nil, fmt.Errorf("garden: restore: player %q: %w", id, err)
		}
		g.order = append(g.order, id)
		g.players[id] = p
		if id == s.CurrentPlayer {
			g.current = i
		}
	}
	if len(s.Players) != len(s.Order) {
		return nil, errors.New("garden: restore: players do not match turn order")
	}
	if g.current < 0 {
		return nil, fmt.Errorf("garden: restore: current player %q not in turn order", s.CurrentPlayer)
	}

	var err error
	if g.deck, err = r.tiles(s.Deck); err != nil {
		return nil, fmt.Errorf("garden: restore: deck: %w", err)
	}
	if g.draft, err = r.tiles(s.DraftZone); err != nil {
		return nil, fmt.Errorf("garden: restore: draft zone: %w", err)
	}
	if g.discard, err = r.tiles(s.Discard); err != nil {
		return nil, fmt.Errorf("garden: restore: discard: %w", err)
	}
	for _, t := range g.draft {
		if t.IsPest() {
			return nil, fmt.Errorf("garden: restore: pest %s in draft zone", t.ID)
		}
	}
	if len(g.draft) > s.Settings.DraftSize {
		return nil, fmt.Errorf("garden: restore: draft zone holds %d tiles, limit %d", len(g.draft), s.Settings.DraftSize)
	}
	return g, nil
}

func restorePlayer(r *restorer, pv *PlayerView, s Settings) (*Player, error) {
	p := newPlayer(pv.ID, s)
	if len(pv.Grid) != s.GridSize {
		return nil, fmt.Errorf("grid has %d rows, expected %d", len(pv.Grid), s.GridSize)
	}
	for y, row := range pv.Grid {
		if len(row) != s.GridSize {
			return nil, fmt.Errorf("grid row %d has %d cells, expected %d", y+1, len(row), s.GridSize)
		}
		for x, v := range row {
			if v == nil {
				continue
			}
			t, err := r.tile(v)
			if err != nil {
				return nil, err
			}
			p.Grid.set(x, y, t)
		}
	}
	for _, res := range Resources {
		n := pv.Resources[res]
		if n < 0 || n > s.MaxResources {
			return nil, fmt.Errorf("%s %d out of range 0..%d", res, n, s.MaxResources)
		}
		p.Resources[res] = n
	}
	if pv.Infestation < 0 || pv.PestToPlace < 0 {
		return nil, errors.New("negative counter")
	}
	p.Score = pv.Score
	p.Infestation = pv.Infestation
	p.CanPlace = pv.CanPlace
	p.CanGrow = pv.CanGrow
	p.PestToPlace = pv.PestToPlace
	return p, nil
}
