package config

import (
	"fmt"
	"strings"
)

// RulesPreset represents a named rule set.
type RulesPreset string

const (
	PresetCasual   RulesPreset = "casual"
	PresetStandard RulesPreset = "standard"
	PresetHarsh    RulesPreset = "harsh"
)

// Presets lists every preset in increasing difficulty.
var Presets = []RulesPreset{PresetCasual, PresetStandard, PresetHarsh}

// ParsePreset converts a user-supplied name into a preset.
func ParsePreset(name string) (RulesPreset, error) {
	p := RulesPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want casual, standard or harsh)", name)
}

// ApplyPreset modifies the rules based on a preset. Grid size and seed are
// left as configured.
func ApplyPreset(cfg *GardenConfig, preset RulesPreset) {
	r := &cfg.Rules
	switch preset {
	case PresetCasual:
		// More room to recover from pests
		r.MaxResources = 7
		r.MaxInfestations = 5
		r.DraftSize = 5
		r.TurnIncome = 2
		r.PestsBlockActions = false
	case PresetStandard:
		r.MaxResources = 5
		r.MaxInfestations = 3
		r.DraftSize = 4
		r.TurnIncome = 1
		r.PestsBlockActions = true
	case PresetHarsh:
		r.MaxResources = 4
		r.MaxInfestations = 2
		r.DraftSize = 3
		r.TurnIncome = 0
		r.PestsBlockActions = true
	}
}
