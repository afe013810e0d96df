package multiplayer

import "github.com/vovakirdan/shared-garden/internal/garden"

// SessionEvent represents an event sent from the host to a session.
type SessionEvent interface {
	sessionEvent()
}

// SnapshotEvent carries an encoded snapshot.Frame. Data is shared between
// all subscribers and must not be modified.
type SnapshotEvent struct {
	MatchID    MatchID
	Seq        uint64
	Data       []byte
	Compressed bool
}

func (SnapshotEvent) sessionEvent() {}

// MatchEndedEvent is sent once when the game finishes or the host stops.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  string // empty when cancelled
	Scores  map[string]int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota // Game over by the rules
	MatchEndReasonCancelled                       // Host stopped first
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "completed"
	case MatchEndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// hostMessage is a request processed by the host loop.
type hostMessage interface {
	hostMessage()
}

type commandMsg struct {
	cmd   garden.Command
	reply chan garden.Result
}

func (commandMsg) hostMessage() {}

type stateMsg struct {
	reply chan *garden.Snapshot
}

func (stateMsg) hostMessage() {}

type movesMsg struct {
	player string
	reply  chan []garden.Command
}

func (movesMsg) hostMessage() {}

type subscribeMsg struct {
	session SessionHandle
	reply   chan struct{}
}

func (subscribeMsg) hostMessage() {}

type unsubscribeMsg struct {
	id SessionID
}

func (unsubscribeMsg) hostMessage() {}
