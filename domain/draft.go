package domain

import (
	"time"

	"github.com/google/uuid"
)

// Draft is the staging area for one participant inside one conversation.
// It accumulates live edits and is only ever read by its own sender until
// an explicit Solidify moves its content into the conversation log.
// A Draft is never shared across participants.
type Draft struct {
	text []rune
}

// Replace splices text over the normalized selection. Offsets are rune
// offsets, so multi-byte UTF-8 content cannot split a character.
func (d *Draft) Replace(sel Selection, text string) {
	lo, hi := sel.Normalize(len(d.text))
	insert := []rune(text)

	out := make([]rune, 0, len(d.text)-(hi-lo)+len(insert))
	out = append(out, d.text[:lo]...)
	out = append(out, insert...)
	out = append(out, d.text[hi:]...)
	d.text = out
}

// Solidify turns the current draft content into a permanent message record
// and resets the draft to empty. The commit timestamp is assigned by the
// caller so that the engine stays clock-free.
func (d *Draft) Solidify(conversation ConversationID, sender ParticipantID, nick string, at time.Time) Message {
	msg := Message{
		ID:           uuid.New(),
		Conversation: conversation,
		SenderID:     sender,
		Nick:         nick,
		Content:      string(d.text),
		CommittedAt:  at,
	}
	d.text = nil
	return msg
}

func (d *Draft) String() string {
	return string(d.text)
}

func (d *Draft) Len() int {
	return len(d.text)
}
