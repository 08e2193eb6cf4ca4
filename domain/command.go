package domain

import (
	"time"
)

// Command is an inbound operation already decoded by the transport
// layer. The engine trusts the carried participant identity.
type Command interface {
	ConversationID() ConversationID
}

type NewConversationCommand struct {
	Conversation ConversationID
	Owner        ParticipantID
	Name         string
}

func (c NewConversationCommand) ConversationID() ConversationID { return c.Conversation }

// NewParticipantCommand is not scoped to a conversation; it registers
// an identity engine-wide.
type NewParticipantCommand struct {
	Participant ParticipantID
	Nick        string
}

func (c NewParticipantCommand) ConversationID() ConversationID { return 0 }

type JoinCommand struct {
	Conversation ConversationID
	Participant  ParticipantID
}

func (c JoinCommand) ConversationID() ConversationID { return c.Conversation }

type ReplaceCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	Selection    Selection
	Text         string
}

func (c ReplaceCommand) ConversationID() ConversationID { return c.Conversation }

type CommitCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	At           time.Time
}

func (c CommitCommand) ConversationID() ConversationID { return c.Conversation }

type SnapshotCommand struct {
	Conversation ConversationID
	Requester    ParticipantID
}

func (c SnapshotCommand) ConversationID() ConversationID { return c.Conversation }

// MoveCursorCommand carries no buffer mutation; it is an ephemeral
// presence hint broadcast to other eligible members.
type MoveCursorCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	Position     int
}

func (c MoveCursorCommand) ConversationID() ConversationID { return c.Conversation }

type BanCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	Target       ParticipantID
}

func (c BanCommand) ConversationID() ConversationID { return c.Conversation }

type PromoteCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	Target       ParticipantID
}

func (c PromoteCommand) ConversationID() ConversationID { return c.Conversation }

type TransferOwnerCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
	Target       ParticipantID
}

func (c TransferOwnerCommand) ConversationID() ConversationID { return c.Conversation }

type TogglePrivateCommand struct {
	Conversation ConversationID
	Sender       ParticipantID
}

func (c TogglePrivateCommand) ConversationID() ConversationID { return c.Conversation }
