package ws

import (
	"time"

	"hubbub/domain/event"
)

// Frame is one outbound payload. Kind discriminates the event type so
// clients can switch without inspecting which fields are set.
type Frame struct {
	Kind         string    `json:"kind"`
	Conversation int64     `json:"conversation"`
	Sender       int64     `json:"sender,omitempty"`
	Nick         string    `json:"nick,omitempty"`
	Buffer       string    `json:"buffer,omitempty"`
	Content      string    `json:"content,omitempty"`
	Language     string    `json:"language,omitempty"`
	Position     int       `json:"position,omitempty"`
	At           time.Time `json:"at"`
}

func toFrame(e event.DomainEvent) (Frame, bool) {
	switch evt := e.(type) {
	case event.BufferReplaced:
		return Frame{
			Kind:         "buffer",
			Conversation: int64(evt.Conversation),
			Sender:       int64(evt.Sender),
			Buffer:       evt.Snapshot,
			At:           evt.At,
		}, true
	case event.SanitizedMessage:
		return Frame{
			Kind:         "message",
			Conversation: int64(evt.Conversation),
			Sender:       int64(evt.Sender),
			Nick:         evt.Nick,
			Content:      evt.Content,
			Language:     evt.Language,
			At:           evt.At,
		}, true
	case event.CursorMoved:
		return Frame{
			Kind:         "cursor",
			Conversation: int64(evt.Conversation),
			Sender:       int64(evt.Sender),
			Position:     evt.Position,
			At:           evt.At,
		}, true
	case event.ParticipantJoined:
		return Frame{
			Kind:         "joined",
			Conversation: int64(evt.Conversation),
			Sender:       int64(evt.Participant),
			Nick:         evt.Nick,
			At:           evt.At,
		}, true
	case event.SnapshotTaken:
		return Frame{
			Kind:         "snapshot",
			Conversation: int64(evt.Conversation),
			Buffer:       evt.Buffer,
			At:           evt.At,
		}, true
	default:
		return Frame{}, false
	}
}
