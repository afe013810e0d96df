// Package multiplayer hosts one garden game for many connected clients.
//
// The Host owns the game and applies every command from a single goroutine,
// so HTTP handlers, WebSocket readers and SSH sessions can all submit
// commands concurrently without interleaving. After each state change the
// Host encodes one snapshot frame and fans the bytes out to subscribers.
package multiplayer

import "github.com/vovakirdan/shared-garden/internal/snapshot"

// SessionID uniquely identifies a connected client (SSH connection,
// WebSocket, local terminal).
type SessionID string

// MatchID uniquely identifies a hosted game.
type MatchID string

// Encoder turns broadcast frames into bytes. *snapshot.Codec implements it.
type Encoder interface {
	EncodeFrame(f snapshot.Frame) ([]byte, error)
	Compressed() bool
}
