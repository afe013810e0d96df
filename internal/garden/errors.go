package garden

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an expected, recoverable rule failure.
type ErrorKind string

const (
	NotCurrentPlayer      ErrorKind = "NotCurrentPlayer"
	ActionAlreadyUsed     ErrorKind = "ActionAlreadyUsed"
	OutOfBounds           ErrorKind = "OutOfBounds"
	InvalidTileIndex      ErrorKind = "InvalidTileIndex"
	IllegalTarget         ErrorKind = "IllegalTarget"
	CellOccupied          ErrorKind = "CellOccupied"
	InvalidTarget         ErrorKind = "InvalidTarget"
	InsufficientResources ErrorKind = "InsufficientResources"
	PlayerNotFound        ErrorKind = "PlayerNotFound"
	PestsPending          ErrorKind = "PestsPending"
	GameOver              ErrorKind = "GameOver"
	UnknownCommand        ErrorKind = "UnknownCommand"
)

// RuleError is returned for invalid player input. It never leaves the game
// in a partially updated state.
type RuleError struct {
	Kind   ErrorKind
	Reason string
}

func (e *RuleError) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Reason
}

// Is matches any RuleError of the same kind, so errors.Is works against
// the sentinels below.
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotCurrentPlayer      = &RuleError{Kind: NotCurrentPlayer}
	ErrActionAlreadyUsed     = &RuleError{Kind: ActionAlreadyUsed}
	ErrOutOfBounds           = &RuleError{Kind: OutOfBounds}
	ErrInvalidTileIndex      = &RuleError{Kind: InvalidTileIndex}
	ErrIllegalTarget         = &RuleError{Kind: IllegalTarget}
	ErrCellOccupied          = &RuleError{Kind: CellOccupied}
	ErrInvalidTarget         = &RuleError{Kind: InvalidTarget}
	ErrInsufficientResources = &RuleError{Kind: InsufficientResources}
	ErrPlayerNotFound        = &RuleError{Kind: PlayerNotFound}
	ErrPestsPending          = &RuleError{Kind: PestsPending}
	ErrGameOver              = &RuleError{Kind: GameOver}
	ErrUnknownCommand        = &RuleError{Kind: UnknownCommand}
)

func ruleErr(kind ErrorKind, format string, args ...any) error {
	return &RuleError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rule error kind from err.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}
