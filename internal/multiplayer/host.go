package multiplayer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

// ErrHostStopped is returned by requests made after Stop.
var ErrHostStopped = errors.New("multiplayer: host stopped")

// Host owns a single garden game. Every method may be called from any
// goroutine; the game itself is only touched by the host loop.
type Host struct {
	id          MatchID
	game        *garden.Game
	enc         Encoder
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	logger      *log.Logger

	started time.Time
	seq     uint64
	latest  SnapshotEvent
	ended   bool

	msgChan  chan hostMessage
	done     chan struct{}
	stopOnce sync.Once
	finished chan struct{}
}

// NewHost wraps game. The initial snapshot is encoded immediately so
// subscribers always have a frame to start from.
func NewHost(id MatchID, game *garden.Game, enc Encoder, logger *log.Logger) (*Host, error) {
	if logger == nil {
		logger = log.Default()
	}
	h := &Host{
		id:       id,
		game:     game,
		enc:      enc,
		sessions: NewSessionRegistry(),
		logger:   logger.WithPrefix("host"),
		started:  time.Now(),
		msgChan:  make(chan hostMessage, 256),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	if err := h.encode(snapshot.Frame{Type: snapshot.FrameUpdate}); err != nil {
		return nil, err
	}
	return h, nil
}

// ID returns the match identifier.
func (h *Host) ID() MatchID {
	return h.id
}

// SetResultSaver sets the optional match result saver. Call before Start.
func (h *Host) SetResultSaver(saver MatchResultSaver) {
	h.resultSaver = saver
}

// Start begins processing requests in the background.
func (h *Host) Start() {
	go h.processMessages()
}

// Stop shuts the host down. Subscribers of an unfinished game receive a
// cancelled MatchEndedEvent. Safe to call multiple times.
func (h *Host) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	<-h.finished
}

// Finished is closed once the host loop has exited.
func (h *Host) Finished() <-chan struct{} {
	return h.finished
}

// Do runs a command against the game and returns its result. The context
// bounds only the wait for the host loop.
func (h *Host) Do(ctx context.Context, cmd garden.Command) (garden.Result, error) {
	reply := make(chan garden.Result, 1)
	if err := h.send(ctx, commandMsg{cmd: cmd, reply: reply}); err != nil {
		return garden.Result{}, err
	}
	return await(ctx, h.done, reply)
}

// State returns a detached snapshot of the current game.
func (h *Host) State(ctx context.Context) (*garden.Snapshot, error) {
	reply := make(chan *garden.Snapshot, 1)
	if err := h.send(ctx, stateMsg{reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h.done, reply)
}

// LegalMoves lists the commands the player may issue now.
func (h *Host) LegalMoves(ctx context.Context, player string) ([]garden.Command, error) {
	reply := make(chan []garden.Command, 1)
	if err := h.send(ctx, movesMsg{player: player, reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h.done, reply)
}

// Subscribe registers a session for broadcasts. The latest frame is sent
// to it before Subscribe returns.
func (h *Host) Subscribe(ctx context.Context, s SessionHandle) error {
	reply := make(chan struct{}, 1)
	if err := h.send(ctx, subscribeMsg{session: s, reply: reply}); err != nil {
		return err
	}
	_, err := await(ctx, h.done, reply)
	return err
}

// Unsubscribe removes a session. It never blocks on a stopped host.
func (h *Host) Unsubscribe(id SessionID) {
	select {
	case h.msgChan <- unsubscribeMsg{id: id}:
	case <-h.done:
	}
}

func (h *Host) send(ctx context.Context, msg hostMessage) error {
	select {
	case h.msgChan <- msg:
		return nil
	case <-h.done:
		return ErrHostStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, done <-chan struct{}, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-done:
		// The loop may have answered just before stopping.
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrHostStopped
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// processMessages handles incoming messages.
func (h *Host) processMessages() {
	defer close(h.finished)
	for {
		select {
		case msg := <-h.msgChan:
			h.handleMessage(msg)
		case <-h.done:
			if !h.ended {
				h.end(MatchEndReasonCancelled)
			}
			return
		}
	}
}

func (h *Host) handleMessage(msg hostMessage) {
	switch m := msg.(type) {
	case commandMsg:
		m.reply <- h.handleCommand(m.cmd)
	case stateMsg:
		m.reply <- h.game.Snapshot()
	case movesMsg:
		m.reply <- h.game.LegalMoves(m.player)
	case subscribeMsg:
		h.sessions.Register(m.session)
		m.session.Send(h.latest)
		h.logger.Debug("session subscribed", "session", m.session.ID(), "sessions", h.sessions.Count())
		m.reply <- struct{}{}
	case unsubscribeMsg:
		h.sessions.Unregister(m.id)
		h.logger.Debug("session unsubscribed", "session", m.id, "sessions", h.sessions.Count())
	}
}

func (h *Host) handleCommand(cmd garden.Command) garden.Result {
	res := garden.Execute(h.game, cmd)
	if !res.OK {
		h.logger.Debug("command rejected", "cmd", cmd.String(), "kind", res.Kind, "reason", res.Reason)
		return res
	}
	if !cmd.Mutates() || h.ended {
		return res
	}

	h.logger.Info("command applied", "cmd", cmd.String(), "turn", h.game.CurrentTurn(), "next", h.game.CurrentPlayer())
	if h.game.IsGameOver() {
		h.end(MatchEndReasonCompleted)
		return res
	}
	if err := h.encode(snapshot.Frame{Type: snapshot.FrameUpdate}); err != nil {
		h.logger.Error("cannot encode snapshot", "err", err)
		return res
	}
	h.sessions.Broadcast(h.latest)
	return res
}

// encode stores the frame for the current state as the latest event.
func (h *Host) encode(f snapshot.Frame) error {
	h.seq++
	f.Seq = h.seq
	f.State = h.game.Snapshot()
	data, err := h.enc.EncodeFrame(f)
	if err != nil {
		return err
	}
	h.latest = SnapshotEvent{
		MatchID:    h.id,
		Seq:        h.seq,
		Data:       data,
		Compressed: h.enc.Compressed(),
	}
	return nil
}

// end broadcasts the final frame and, for a completed game, saves the result.
func (h *Host) end(reason MatchEndReason) {
	h.ended = true
	winner, _ := h.game.Winner()

	if err := h.encode(snapshot.Frame{Type: snapshot.FrameEnd, Winner: winner, Reason: reason.String()}); err != nil {
		h.logger.Error("cannot encode final snapshot", "err", err)
	} else {
		h.sessions.Broadcast(h.latest)
	}
	h.sessions.Broadcast(MatchEndedEvent{
		MatchID: h.id,
		Reason:  reason,
		Winner:  winner,
		Scores:  scores(h.game),
	})
	h.logger.Info("match ended", "match", h.id, "reason", reason, "winner", winner)

	if reason != MatchEndReasonCompleted || h.resultSaver == nil {
		return
	}
	if err := h.resultSaver.SaveMatchResult(resultFromGame(h.id, h.game, reason, h.started)); err != nil {
		h.logger.Error("cannot save match result", "match", h.id, "err", err)
	}
}
