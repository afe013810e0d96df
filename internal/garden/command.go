package garden

import "fmt"

// CommandType names a command on the wire.
type CommandType string

const (
	CmdDraftPick  CommandType = "draftPick"
	CmdPlaceTile  CommandType = "placeTile"
	CmdPlacePest  CommandType = "placePest"
	CmdGrowPlant  CommandType = "growPlant"
	CmdNextTurn   CommandType = "nextTurn"
	CmdIsGameOver CommandType = "isGameOver"
	CmdGetWinner  CommandType = "getWinner"
)

// CommandTypes lists every accepted command type.
var CommandTypes = []CommandType{
	CmdDraftPick, CmdPlaceTile, CmdPlacePest, CmdGrowPlant,
	CmdNextTurn, CmdIsGameOver, CmdGetWinner,
}

// Command is a single request against the engine. Fields a command type
// does not use are ignored.
type Command struct {
	Type   CommandType `json:"type"`
	Player string      `json:"player,omitempty"`
	Index  int         `json:"index"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
}

// Mutates reports whether a successful run of c can change game state.
func (c Command) Mutates() bool {
	switch c.Type {
	case CmdPlaceTile, CmdPlacePest, CmdGrowPlant, CmdNextTurn:
		return true
	}
	return false
}

func (c Command) String() string {
	switch c.Type {
	case CmdDraftPick:
		return fmt.Sprintf("%s %s #%d", c.Type, c.Player, c.Index)
	case CmdPlaceTile:
		return fmt.Sprintf("%s %s #%d %s", c.Type, c.Player, c.Index, label(c.X, c.Y))
	case CmdPlacePest, CmdGrowPlant:
		return fmt.Sprintf("%s %s %s", c.Type, c.Player, label(c.X, c.Y))
	default:
		return string(c.Type)
	}
}

// Result is the outcome of Execute in a transport-friendly form.
type Result struct {
	OK       bool      `json:"ok"`
	Kind     ErrorKind `json:"kind,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Tile     *TileView `json:"tile,omitempty"`
	GameOver bool      `json:"gameOver"`
	Winner   string    `json:"winner,omitempty"`
}

// Execute dispatches c against g and folds any rule error into the result.
func Execute(g *Game, c Command) Result {
	var (
		res Result
		err error
	)
	switch c.Type {
	case CmdDraftPick:
		var t *Tile
		if t, err = g.DraftPick(c.Player, c.Index); err == nil {
			res.Tile = viewTile(t)
		}
	case CmdPlaceTile:
		err = g.PlaceTile(c.Player, c.Index, c.X, c.Y)
	case CmdPlacePest:
		err = g.PlacePest(c.Player, c.X, c.Y)
	case CmdGrowPlant:
		err = g.GrowPlant(c.Player, c.X, c.Y)
	case CmdNextTurn:
		// The player is optional; when given it must be the one whose turn ends.
		if c.Player != "" && c.Player != g.CurrentPlayer() {
			err = ruleErr(NotCurrentPlayer, "it is %s's turn", g.CurrentPlayer())
			break
		}
		g.NextTurn()
	case CmdIsGameOver:
	case CmdGetWinner:
		res.Winner, _ = g.Winner()
	default:
		err = ruleErr(UnknownCommand, "unknown command %q", c.Type)
	}

	res.GameOver = g.IsGameOver()
	if err != nil {
		res.Kind, _ = KindOf(err)
		res.Reason = err.Error()
		return res
	}
	res.OK = true
	return res
}
