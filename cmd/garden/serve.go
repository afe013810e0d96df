package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shared-garden/internal/platform/tui"
	"github.com/vovakirdan/shared-garden/internal/transport/httpapi"
)

var (
	flagHTTPAddr string
	flagSSHAddr  string
	flagHostKey  string
	flagCompress bool
	flagNoSSH    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [players...]",
	Short: "Host a match for network clients",
	Long: `Host one match and expose it to remote clients:

  POST /cmd           - run a command ({"type":"placeTile","player":"ann",...})
  GET  /state         - current snapshot (zstd with Accept-Encoding: zstd)
  GET  /moves?player= - legal commands for a player
  GET  /health        - liveness
  GET  /ws            - snapshot stream over WebSocket
  ssh -p 23234 <name> - terminal client; a player's name takes their seat

Finished games are recorded in the scores database.

Examples:
  garden serve
  garden serve ann bob --http :8080
  garden serve --no-ssh --compress
  garden serve --host-key ./garden_host_key`,
	Args: cobra.MaximumNArgs(6),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP address (default from config)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (generated if missing)")
	serveCmd.Flags().BoolVar(&flagCompress, "compress", false, "Compress WebSocket snapshots with zstd")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
}

func runServe(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig(args)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}
	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagSSHAddr != "" {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagNoSSH {
		cfg.Server.SSHAddr = ""
	}
	cfg.Server.CompressSnapshots = cfg.Server.CompressSnapshots || flagCompress

	m, err := startMatch(cfg, cfg.Server.CompressSnapshots, logger)
	if err != nil {
		logger.Fatal("cannot start match", "error", err)
	}
	defer m.Close()

	api, err := httpapi.NewServer(m.host, m.codec, cfg.Server, logger)
	if err != nil {
		logger.Fatal("cannot create HTTP server", "error", err)
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 2)

	go func() {
		logger.Info("starting HTTP server", "address", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	var sshServer *tui.SSHServer
	if cfg.Server.SSHAddr != "" {
		sshServer, err = tui.NewSSHServer(m.host, m.codec, cfg.Players, cfg.Server, logger)
		if err != nil {
			logger.Fatal("cannot create SSH server", "error", err)
		}
		go func() {
			if err := sshServer.ListenAndServe(); err != nil {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-errc:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stopping the host first sends the end frame to every open client.
	m.host.Stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown", "error", err)
	}
	if sshServer != nil {
		if err := sshServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("SSH shutdown", "error", err)
		}
	}
}
