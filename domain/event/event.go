package event

import (
	"time"

	"github.com/google/uuid"

	"hubbub/domain"
)

// DomainEvent is an observable fact produced by the engine. SenderID
// identifies the originating participant so routing can exclude them
// from their own broadcast.
type DomainEvent interface {
	ConversationID() domain.ConversationID
	SenderID() domain.ParticipantID
}

// BufferReplaced carries the new committed buffer snapshot after a
// range replace.
type BufferReplaced struct {
	Conversation domain.ConversationID
	Sender       domain.ParticipantID
	Snapshot     string
	At           time.Time
}

func (e BufferReplaced) ConversationID() domain.ConversationID { return e.Conversation }
func (e BufferReplaced) SenderID() domain.ParticipantID        { return e.Sender }

// MessageCommitted is the raw solidified draft, before moderation.
type MessageCommitted struct {
	ID           uuid.UUID
	Conversation domain.ConversationID
	Sender       domain.ParticipantID
	Nick         string
	Content      string
	At           time.Time
}

func (e MessageCommitted) ConversationID() domain.ConversationID { return e.Conversation }
func (e MessageCommitted) SenderID() domain.ParticipantID        { return e.Sender }

// SanitizedMessage is a committed message after the censor pass, the
// only message form that reaches sinks and connected participants.
type SanitizedMessage struct {
	ID            uuid.UUID
	Conversation  domain.ConversationID
	Sender        domain.ParticipantID
	Nick          string
	Content       string
	Language      string
	CensoredWords []string
	At            time.Time
}

func (e SanitizedMessage) ConversationID() domain.ConversationID { return e.Conversation }
func (e SanitizedMessage) SenderID() domain.ParticipantID        { return e.Sender }

// CursorMoved is an ephemeral presence hint. It is broadcast and never
// persisted.
type CursorMoved struct {
	Conversation domain.ConversationID
	Sender       domain.ParticipantID
	Position     int
	At           time.Time
}

func (e CursorMoved) ConversationID() domain.ConversationID { return e.Conversation }
func (e CursorMoved) SenderID() domain.ParticipantID        { return e.Sender }

type ParticipantJoined struct {
	Conversation domain.ConversationID
	Participant  domain.ParticipantID
	Nick         string
	At           time.Time
}

func (e ParticipantJoined) ConversationID() domain.ConversationID { return e.Conversation }
func (e ParticipantJoined) SenderID() domain.ParticipantID        { return e.Participant }

// SnapshotTaken is a direct reply to the requester only; it never goes
// through the fanout.
type SnapshotTaken struct {
	Conversation domain.ConversationID
	Requester    domain.ParticipantID
	Buffer       string
	At           time.Time
}

func (e SnapshotTaken) ConversationID() domain.ConversationID { return e.Conversation }
func (e SnapshotTaken) SenderID() domain.ParticipantID        { return e.Requester }
