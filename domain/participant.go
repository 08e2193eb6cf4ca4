// This file defines Participant entities and related invariants.
package domain

import (
	"hubbub/errors"

	"github.com/go-playground/validator/v10"
)

// ParticipantID is an opaque connection-derived identifier. The engine
// trusts whatever the transport layer supplies; authentication is not
// its concern.
type ParticipantID int64

// ConversationID identifies one shared text session.
type ConversationID int64

type Participant struct {
	ID   ParticipantID
	Nick string
}

var validate = validator.New()

type nickname struct {
	Value string `validate:"required,min=1,max=31"`
}

// ValidateNick enforces the display-name rule: 1 to 31 characters.
// An empty nick is allowed at the Participant level (it simply stays
// unset); this only rejects nicks that were supplied and are malformed.
func ValidateNick(nick string) error {
	if err := validate.Struct(nickname{Value: nick}); err != nil {
		return errors.ErrInvalidNick
	}
	return nil
}
