package garden

import (
	"errors"
	"fmt"
)

// Player count limits for a session.
const (
	MinPlayers = 1
	MaxPlayers = 6
)

// MaxDraftSize bounds the draft zone. A one-player deck has 49 tiles, so a
// full draft always leaves most of the deck to play.
const MaxDraftSize = 10

// Settings are fixed for the lifetime of a game.
type Settings struct {
	GridSize          int   `json:"gridSize" yaml:"grid_size"`
	MaxResources      int   `json:"maxResources" yaml:"max_resources"`
	MaxInfestations   int   `json:"maxInfestations" yaml:"max_infestations"`
	DraftSize         int   `json:"draftSize" yaml:"draft_size"`
	TurnIncome        int   `json:"turnIncome" yaml:"turn_income"`
	PestsBlockActions bool  `json:"pestsBlockActions" yaml:"pests_block_actions"`
	Seed              int64 `json:"seed" yaml:"seed"`
}

// DefaultSettings returns the standard 5x5 rules.
func DefaultSettings() Settings {
	return Settings{
		GridSize:          5,
		MaxResources:      5,
		MaxInfestations:   3,
		DraftSize:         4,
		TurnIncome:        1,
		PestsBlockActions: true,
	}
}

// Validate checks that the settings describe a playable game.
func (s Settings) Validate() error {
	var errs []error
	if s.GridSize < 2 || s.GridSize > 26 {
		errs = append(errs, fmt.Errorf("grid size %d out of range 2..26", s.GridSize))
	}
	if s.MaxResources < 1 {
		errs = append(errs, fmt.Errorf("max resources must be positive, got %d", s.MaxResources))
	}
	if s.MaxInfestations < 1 {
		errs = append(errs, fmt.Errorf("max infestations must be positive, got %d", s.MaxInfestations))
	}
	if s.DraftSize < 1 || s.DraftSize > MaxDraftSize {
		errs = append(errs, fmt.Errorf("draft size %d out of range 1..%d", s.DraftSize, MaxDraftSize))
	}
	if s.TurnIncome < 0 {
		errs = append(errs, fmt.Errorf("turn income must not be negative, got %d", s.TurnIncome))
	}
	return errors.Join(errs...)
}
