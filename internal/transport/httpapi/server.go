// Package httpapi exposes a garden host over HTTP and WebSocket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/shared-garden/internal/config"
	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

const maxBodyBytes = 64 << 10

// Server serves one match.
type Server struct {
	host   *multiplayer.Host
	codec  *snapshot.Codec
	schema *jsonschema.Schema
	logger *log.Logger

	origins      []string
	writeTimeout time.Duration
	bufferSize   int
	upgrader     websocket.Upgrader
}

// NewServer creates a server for host. The codec is used for /state; the
// WebSocket stream carries whatever the host's encoder produced.
func NewServer(host *multiplayer.Host, codec *snapshot.Codec, cfg config.ServerConfig, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	schema, err := compileCommandSchema()
	if err != nil {
		return nil, err
	}
	s := &Server{
		host:         host,
		codec:        codec,
		schema:       schema,
		logger:       logger.WithPrefix("http"),
		origins:      cfg.AllowedOrigins,
		writeTimeout: cfg.WriteTimeout,
		bufferSize:   cfg.SessionBuffer,
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = 5 * time.Second
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// Handler returns the routes wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cmd", s.handleCommand)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /moves", s.handleMoves)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWS)
	return s.cors(s.logRequests(mux))
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "cannot read body")
		return
	}
	cmd, err := parseCommand(s.schema, raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.host.Do(r.Context(), cmd)
	if err != nil {
		s.hostFailure(w, err)
		return
	}
	writeJSON(w, statusFor(res), res)
}

// statusFor maps a result to an HTTP status. Rule violations are conflicts
// with the current game state.
func statusFor(res garden.Result) int {
	switch {
	case res.OK:
		return http.StatusOK
	case res.Kind == garden.UnknownCommand:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.host.State(r.Context())
	if err != nil {
		s.hostFailure(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		g, err := garden.Restore(state)
		if err != nil {
			s.logger.Error("cannot restore snapshot", "err", err)
			writeErr(w, http.StatusInternalServerError, "cannot render state")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, garden.Render(g))
		return
	}

	compress := acceptsZstd(r)
	data, err := s.codec.EncodeState(state, compress)
	if err != nil {
		s.logger.Error("cannot encode state", "err", err)
		writeErr(w, http.StatusInternalServerError, "cannot encode state")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Add("Vary", "Accept-Encoding")
	if compress {
		w.Header().Set("Content-Encoding", snapshot.ContentEncoding)
	}
	_, _ = w.Write(data)
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		writeErr(w, http.StatusBadRequest, "missing player")
		return
	}
	moves, err := s.host.LegalMoves(r.Context(), player)
	if err != nil {
		s.hostFailure(w, err)
		return
	}
	if moves == nil {
		moves = []garden.Command{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": player, "moves": moves})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.host.Finished():
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "match": s.host.ID()})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "match": s.host.ID()})
	}
}

func (s *Server) hostFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, multiplayer.ErrHostStopped):
		writeErr(w, http.StatusServiceUnavailable, "match is closed")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.logger.Error("host request failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || s.allowOrigin(origin)
}

func (s *Server) allowOrigin(origin string) bool {
	return slices.Contains(s.origins, "*") || slices.Contains(s.origins, origin)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.allowOrigin(origin) {
			h := w.Header()
			if slices.Contains(s.origins, "*") {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept-Encoding")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController and the WebSocket upgrader reach
// the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}

func acceptsZstd(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), snapshot.ContentEncoding) {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
