package multiplayer

import (
	"sync"
	"sync/atomic"
)

// SessionHandle is what the host needs from a subscriber. Terminal,
// WebSocket and test clients all satisfy it.
type SessionHandle interface {
	ID() SessionID
	// Send must never block the host loop.
	Send(evt SessionEvent)
	Done() <-chan struct{}
}

const defaultSessionBuffer = 16

// ChannelSession delivers host events through a bounded channel.
//
// When the reader falls behind, the oldest queued event is discarded to make
// room. Snapshots are complete states, so the reader only ever loses
// intermediate frames.
type ChannelSession struct {
	id      SessionID
	events  chan SessionEvent
	done    chan struct{}
	closed  sync.Once
	dropped atomic.Uint64
}

// NewChannelSession returns a session queueing up to buffer events.
func NewChannelSession(id SessionID, buffer int) *ChannelSession {
	if buffer < 1 {
		buffer = defaultSessionBuffer
	}
	return &ChannelSession{
		id:     id,
		events: make(chan SessionEvent, buffer),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID { return s.id }

// Send queues evt, evicting older events while the buffer is full.
// Events sent after Close are ignored.
func (s *ChannelSession) Send(evt SessionEvent) {
	if s.isClosed() {
		return
	}
	for !s.offer(evt) {
		s.evict()
	}
}

func (s *ChannelSession) offer(evt SessionEvent) bool {
	select {
	case s.events <- evt:
		return true
	default:
		return false
	}
}

func (s *ChannelSession) evict() {
	select {
	case <-s.events:
		s.dropped.Add(1)
	default:
	}
}

func (s *ChannelSession) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

// Dropped reports how many queued events were evicted.
func (s *ChannelSession) Dropped() uint64 { return s.dropped.Load() }

func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Close ends the session. It may be called more than once.
func (s *ChannelSession) Close() {
	s.closed.Do(func() { close(s.done) })
}

// SessionRegistry is the set of sessions subscribed to a host.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: map[SessionID]SessionHandle{}}
}

// Register subscribes session. A session with the same ID is replaced.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Broadcast delivers evt to every session and returns how many received it.
// Sessions whose Done channel is closed are dropped from the registry.
func (r *SessionRegistry) Broadcast(evt SessionEvent) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	reached := 0
	for id, session := range r.sessions {
		if ended(session) {
			delete(r.sessions, id)
			continue
		}
		session.Send(evt)
		reached++
	}
	return reached
}

func ended(session SessionHandle) bool {
	select {
	case <-session.Done():
		return true
	default:
		return false
	}
}
