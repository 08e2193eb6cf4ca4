package ws

import (
	stderrors "errors"
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"hubbub/domain"
	"hubbub/errors"
	"hubbub/observability"
	"hubbub/runtime"
	"hubbub/sink"
)

// Server serves one goroutine per connected participant. The read loop
// decodes envelopes into commands; a dedicated writer goroutine drains
// the participant's session sink, so the connection has a single
// writer.
type Server struct {
	log        *slog.Logger
	dispatcher *runtime.Dispatcher
	registry   *runtime.Registry
	monitoring *observability.Monitoring
	upgrader   websocket.Upgrader
	bufferSize int
	nextID     atomic.Int64
}

func NewServer(log *slog.Logger, dispatcher *runtime.Dispatcher,
	registry *runtime.Registry, monitoring *observability.Monitoring,
	bufferSize int) *Server {
	return &Server{
		log:        log,
		dispatcher: dispatcher,
		registry:   registry,
		monitoring: monitoring,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		bufferSize: bufferSize,
	}
}

// HandleSession upgrades the connection, registers a fresh participant
// identity bound to it, and blocks until the client disconnects.
// Deferred cleanup removes the session from the registry; conversation
// membership survives the disconnect.
func (s *Server) HandleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("Upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	participant := domain.ParticipantID(s.nextID.Add(1))
	nick := r.URL.Query().Get("nick")

	if err := s.dispatcher.Dispatch(domain.NewParticipantCommand{
		Participant: participant,
		Nick:        nick,
	}); err != nil {
		s.log.Warn("Participant registration refused", "participant", participant, "error", err)
		return
	}

	session := sink.NewSessionSink(s.bufferSize)
	s.registry.Subscribe(participant, session)
	s.monitoring.SessionOpened()
	defer func() {
		s.registry.Unsubscribe(participant)
		s.registry.DeregisterParticipant(participant)
		s.monitoring.SessionClosed()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.writeLoop(ctx, conn, session)

	s.log.Info("Session opened", "participant", participant, "nick", nick)

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("Session closed abnormally", "participant", participant, "error", err)
			} else {
				s.log.Info("Session closed", "participant", participant)
			}
			return
		}
		if err := env.Validate(); err != nil {
			s.log.Debug("Malformed envelope", "participant", participant, "error", err)
			continue
		}
		s.handle(participant, env, session)
	}
}

func (s *Server) handle(participant domain.ParticipantID, env Envelope, session *sink.SessionSink) {
	if env.Kind == KindSnapshot {
		snapshot, err := s.dispatcher.Snapshot(domain.SnapshotCommand{
			Conversation: domain.ConversationID(env.Conversation),
			Requester:    participant,
		})
		if err != nil {
			// Denied or unknown conversation: the requester simply
			// gets no reply.
			s.log.Debug("Snapshot refused", "participant", participant, "error", err)
			return
		}
		// Direct reply through the session's own channel, bypassing
		// the fanout.
		select {
		case session.Events <- snapshot:
		default:
		}
		return
	}

	cmd := env.Command(participant, time.Now().UTC())
	if cmd == nil {
		return
	}
	if err := s.dispatcher.Dispatch(cmd); err != nil {
		if stderrors.Is(err, errors.ErrAlreadyMember) {
			s.log.Debug("Join on existing membership", "participant", participant)
			return
		}
		s.log.Warn("Command failed", "kind", env.Kind, "participant", participant, "error", err)
	}
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, session *sink.SessionSink) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-session.Events:
			frame, ok := toFrame(evt)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(frame); err != nil {
				s.log.Debug("Failed to push frame", "error", err)
				return
			}
		}
	}
}
