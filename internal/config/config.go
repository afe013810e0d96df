// Package config provides YAML-based configuration loading and rule presets
// for Shared Garden.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

// GardenConfig contains all configuration for a garden session and the
// processes that host it.
type GardenConfig struct {
	Rules   garden.Settings `yaml:"rules"`
	Players []string        `yaml:"players"`
	Server  ServerConfig    `yaml:"server"`
	Storage StorageConfig   `yaml:"storage"`
}

// ServerConfig defines the network surfaces of `garden serve`.
type ServerConfig struct {
	HTTPAddr          string        `yaml:"http_addr"`
	SSHAddr           string        `yaml:"ssh_addr"`        // empty disables SSH
	HostKeyPath       string        `yaml:"host_key_path"`   // generated on first start
	AllowedOrigins    []string      `yaml:"allowed_origins"` // "*" allows any origin
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	SessionBuffer     int           `yaml:"session_buffer"` // queued snapshots per subscriber
	CompressSnapshots bool          `yaml:"compress_snapshots"`
}

// StorageConfig defines where finished games are recorded.
type StorageConfig struct {
	Path    string `yaml:"path"` // "~" expands to the home directory
	Disable bool   `yaml:"disable"`
}

// Validate checks the configuration for values no session can run with.
func (c GardenConfig) Validate() error {
	var errs []error
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	if n := len(c.Players); n < garden.MinPlayers || n > garden.MaxPlayers {
		errs = append(errs, fmt.Errorf("players: need %d..%d, got %d", garden.MinPlayers, garden.MaxPlayers, n))
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p == "" {
			errs = append(errs, errors.New("players: empty name"))
		} else if seen[p] {
			errs = append(errs, fmt.Errorf("players: duplicate name %q", p))
		}
		seen[p] = true
	}
	if c.Server.HTTPAddr == "" {
		errs = append(errs, errors.New("server: http_addr is required"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server: write_timeout must be positive"))
	}
	if c.Server.SessionBuffer < 1 {
		errs = append(errs, errors.New("server: session_buffer must be at least 1"))
	}
	return errors.Join(errs...)
}
