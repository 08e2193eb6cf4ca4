// Messages are immutable once solidified and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a solidified draft: the permanent record appended to a
// conversation log when its sender commits.
type Message struct {
	ID           uuid.UUID // unique identifier
	Conversation ConversationID
	SenderID     ParticipantID
	Nick         string
	Content      string
	CommittedAt  time.Time
}
