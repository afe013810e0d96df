package core

// Action represents a semantic client action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // move cursor up
	ActionDown            // move cursor down
	ActionLeft            // move cursor left
	ActionRight           // move cursor right
	ActionNextTile        // select next draft tile
	ActionPrevTile        // select previous draft tile
	ActionPlace           // place the selected draft tile at the cursor
	ActionPest            // place a forced pest at the cursor
	ActionGrow            // grow the plant at the cursor
	ActionEndTurn         // advance to the next player
	ActionHelp            // toggle full help
	ActionQuit            // leave the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionNextTile:
		return "NextTile"
	case ActionPrevTile:
		return "PrevTile"
	case ActionPlace:
		return "Place"
	case ActionPest:
		return "Pest"
	case ActionGrow:
		return "Grow"
	case ActionEndTurn:
		return "EndTurn"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Move returns the cursor offset for a directional action.
func (a Action) Move() (Coord, bool) {
	switch a {
	case ActionUp:
		return Orthogonal[0], true
	case ActionDown:
		return Orthogonal[1], true
	case ActionLeft:
		return Orthogonal[2], true
	case ActionRight:
		return Orthogonal[3], true
	}
	return Coord{}, false
}
