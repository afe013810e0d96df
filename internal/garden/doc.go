// Package garden implements the Shared Garden rules engine.
//
// A Game is the single authoritative state of one session. Players draft
// tiles from a shared zone, place them on their own square grid, and spend
// water, light and compost to grow plants for score. Pests drawn from the
// deck never reach the draft zone; they become placement obligations for
// every player instead.
//
// The engine is synchronous and does no locking. Callers that accept
// commands from several goroutines must serialize them (see the
// multiplayer package) and must encode a Snapshot before sharing state.
package garden
