package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/shared-garden/internal/garden"
)

//go:embed defaults/garden.yaml
var defaultGardenYAML []byte

// DefaultGardenConfig returns the default configuration.
func DefaultGardenConfig() GardenConfig {
	return GardenConfig{
		Rules:   garden.DefaultSettings(),
		Players: []string{"ann", "bob"},
		Server: ServerConfig{
			HTTPAddr:       ":3000",
			SSHAddr:        ":23234",
			HostKeyPath:    ".ssh/garden_ed25519",
			AllowedOrigins: []string{"*"},
			WriteTimeout:   5 * time.Second,
			SessionBuffer:  16,
		},
		Storage: StorageConfig{
			Path: "~/.garden/scores.db",
		},
	}
}
