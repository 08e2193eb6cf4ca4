// Package ws is the websocket edge of the engine: it upgrades
// connections, decodes inbound JSON envelopes into typed commands, and
// serializes outbound events into frames. Everything beyond decode and
// encode is delegated to the dispatcher.
package ws

import (
	"time"

	"github.com/go-playground/validator/v10"

	"hubbub/domain"
)

const (
	KindNewConversation = "new_conversation"
	KindJoin            = "join"
	KindReplace         = "replace"
	KindCommit          = "commit"
	KindSnapshot        = "snapshot"
	KindMoveCursor      = "move_cursor"
	KindBan             = "ban"
	KindPromote         = "promote"
	KindTransferOwner   = "transfer_owner"
	KindTogglePrivate   = "toggle_private"
)

var validate = validator.New()

// Envelope is one inbound frame. The participant identity is never part
// of the payload; it is derived from the connection.
type Envelope struct {
	Kind         string `json:"kind" validate:"required,oneof=new_conversation join replace commit snapshot move_cursor ban promote transfer_owner toggle_private"`
	Conversation int64  `json:"conversation"`
	Name         string `json:"name,omitempty"`
	Start        int    `json:"start,omitempty"`
	End          int    `json:"end,omitempty"`
	Position     int    `json:"position,omitempty"`
	Target       int64  `json:"target,omitempty"`
	Text         string `json:"text,omitempty"`
}

func (e Envelope) Validate() error {
	return validate.Struct(e)
}

// Command translates the envelope into the typed operation for the
// dispatcher. Snapshot is handled separately since it is a query with a
// direct reply.
func (e Envelope) Command(sender domain.ParticipantID, at time.Time) domain.Command {
	convo := domain.ConversationID(e.Conversation)

	switch e.Kind {
	case KindNewConversation:
		return domain.NewConversationCommand{Conversation: convo, Owner: sender, Name: e.Name}
	case KindJoin:
		return domain.JoinCommand{Conversation: convo, Participant: sender}
	case KindReplace:
		return domain.ReplaceCommand{
			Conversation: convo,
			Sender:       sender,
			Selection:    domain.Selection{Start: e.Start, End: e.End},
			Text:         e.Text,
		}
	case KindCommit:
		return domain.CommitCommand{Conversation: convo, Sender: sender, At: at}
	case KindMoveCursor:
		return domain.MoveCursorCommand{Conversation: convo, Sender: sender, Position: e.Position}
	case KindBan:
		return domain.BanCommand{Conversation: convo, Sender: sender, Target: domain.ParticipantID(e.Target)}
	case KindPromote:
		return domain.PromoteCommand{Conversation: convo, Sender: sender, Target: domain.ParticipantID(e.Target)}
	case KindTransferOwner:
		return domain.TransferOwnerCommand{Conversation: convo, Sender: sender, Target: domain.ParticipantID(e.Target)}
	case KindTogglePrivate:
		return domain.TogglePrivateCommand{Conversation: convo, Sender: sender}
	default:
		return nil
	}
}
