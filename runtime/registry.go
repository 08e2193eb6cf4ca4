// Package runtime handles command dispatch, event propagation, and
// routing. It orchestrates the system without containing domain rules.
package runtime

import (
	"sync"

	"github.com/samber/lo"

	"hubbub/contract"
	"hubbub/domain"
	"hubbub/errors"
)

// Registry is the sole owner of the authoritative Conversation and
// Participant records, keyed by caller-assigned identifiers. It also
// tracks which participants currently hold a live connection (a
// session sink). Membership and connectivity are deliberately
// decoupled: disconnecting removes the session, never the membership,
// so an identifier can reconnect and regain access.
type Registry struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	participants  map[domain.ParticipantID]*domain.Participant
	sessions      map[domain.ParticipantID]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		participants:  make(map[domain.ParticipantID]*domain.Participant),
		sessions:      make(map[domain.ParticipantID]contract.EventSink),
	}
}

// RegisterParticipant records a new identity. Identifiers are assigned
// by the caller and must be unique: a duplicate is ErrConflict, never
// silently ignored.
func (r *Registry) RegisterParticipant(id domain.ParticipantID, nick string) (*domain.Participant, error) {
	if nick != "" {
		if err := domain.ValidateNick(nick); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[id]; ok {
		return nil, errors.ErrConflict
	}
	p := &domain.Participant{ID: id, Nick: nick}
	r.participants[id] = p
	return p, nil
}

// DeregisterParticipant removes the participant record and its session.
// Conversation membership sets are left untouched: presence, not
// connectivity, defines membership.
func (r *Registry) DeregisterParticipant(id domain.ParticipantID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.participants, id)
	delete(r.sessions, id)
}

func (r *Registry) Participant(id domain.ParticipantID) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return p, nil
}

// CreateConversation fails with ErrConflict when the identifier is
// taken and ErrNotFound when the owner is unknown. The owner becomes
// an implicit member.
func (r *Registry) CreateConversation(id domain.ConversationID, owner domain.ParticipantID, name string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[id]; ok {
		return nil, errors.ErrConflict
	}
	if _, ok := r.participants[owner]; !ok {
		return nil, errors.ErrNotFound
	}
	c := domain.NewConversation(id, owner, name)
	r.conversations[id] = c
	return c, nil
}

func (r *Registry) Conversation(id domain.ConversationID) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conversations[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return c, nil
}

// Join adds a participant to a conversation's member set. Joining a
// conversation twice reports ErrAlreadyMember, which callers treat as
// informational rather than fatal.
func (r *Registry) Join(conversation domain.ConversationID, participant domain.ParticipantID) error {
	r.mu.RLock()
	c, okConvo := r.conversations[conversation]
	_, okPart := r.participants[participant]
	r.mu.RUnlock()

	if !okConvo || !okPart {
		return errors.ErrNotFound
	}
	return c.AddMember(participant)
}

// Subscribe binds a participant's live connection to its outbound sink.
func (r *Registry) Subscribe(id domain.ParticipantID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = sink
}

func (r *Registry) Unsubscribe(id domain.ParticipantID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// SinksFor resolves the recipient set of a conversation update and maps
// it to the currently connected sinks. Recipients are computed under
// the conversation lock, sink resolution under the registry read lock;
// no outbound send happens under either. A recipient without a session
// is silently skipped: offline members simply miss the live update.
func (r *Registry) SinksFor(id domain.ConversationID, excluding domain.ParticipantID) []contract.EventSink {
	r.mu.RLock()
	c, ok := r.conversations[id]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	recipients := c.Recipients(excluding)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.FilterMap(recipients, func(pid domain.ParticipantID, _ int) (contract.EventSink, bool) {
		sink, exists := r.sessions[pid]
		return sink, exists
	})
}
