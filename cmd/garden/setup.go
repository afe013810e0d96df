package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/shared-garden/internal/config"
	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
	"github.com/vovakirdan/shared-garden/internal/storage"
)

// loadConfig resolves the configuration from file, preset and flags.
func loadConfig(players []string) (config.GardenConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagSeed != 0 {
		cfg.Rules.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if len(players) > 0 {
		cfg.Players = players
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "garden",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openStore opens the scores database unless storage is disabled. A nil
// store is returned with a nil error when it is.
func openStore(cfg config.GardenConfig) (*storage.Store, error) {
	if cfg.Storage.Disable {
		return nil, nil
	}
	return storage.Open(cfg.Storage.Path)
}

// match bundles a running host with what it needs to be torn down.
type match struct {
	host  *multiplayer.Host
	codec *snapshot.Codec
	store *storage.Store
}

// startMatch creates a game from cfg and starts a host for it. Finished
// games are recorded in the scores database when one can be opened.
func startMatch(cfg config.GardenConfig, compress bool, logger *log.Logger) (*match, error) {
	game, err := garden.New(cfg.Players, cfg.Rules)
	if err != nil {
		return nil, err
	}
	codec, err := snapshot.NewCodec(compress)
	if err != nil {
		return nil, err
	}

	id := multiplayer.MatchID(uuid.NewString())
	host, err := multiplayer.NewHost(id, game, codec, logger)
	if err != nil {
		codec.Close()
		return nil, err
	}

	m := &match{host: host, codec: codec}
	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else if store != nil {
		m.store = store
		host.SetResultSaver(store)
	}

	host.Start()
	logger.Info("match started", "match", id, "players", cfg.Players, "grid", cfg.Rules.GridSize)
	return m, nil
}

// Close stops the host and releases the codec and database.
func (m *match) Close() {
	m.host.Stop()
	m.codec.Close()
	if m.store != nil {
		m.store.Close()
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
