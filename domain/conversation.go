package domain

import (
	"sync"
	"time"

	"hubbub/errors"
)

type Set map[ParticipantID]struct{}

func (s Set) Has(id ParticipantID) bool {
	_, ok := s[id]
	return ok
}

// Conversation owns one committed buffer, the append-only message log,
// the membership sets, and the per-sender drafts. All accesses are
// serialized by a single mutex: permission checks, selection
// normalization, and buffer splicing are bounded in-memory operations,
// so nothing ever blocks on I/O while the lock is held.
//
// Invariants: the owner is never in the banned set, and a Ban evicts
// its target from the admin and member sets so banned stays disjoint
// from members.
type Conversation struct {
	ID   ConversationID
	Name string

	mu      sync.Mutex
	ownerID ParticipantID
	admins  Set
	members Set
	banned  Set
	private bool

	buffer []rune
	log    []Message
	drafts map[ParticipantID]*Draft
}

func NewConversation(id ConversationID, owner ParticipantID, name string) *Conversation {
	c := &Conversation{
		ID:      id,
		Name:    name,
		ownerID: owner,
		admins:  make(Set),
		members: make(Set),
		banned:  make(Set),
		drafts:  make(map[ParticipantID]*Draft),
	}
	// The owner is an implicit member from creation.
	c.members[owner] = struct{}{}
	return c
}

// LevelOf resolves the participant's access level. The evaluation order
// is load-bearing: owner first, then banned, then admin, then member.
// A participant who is both owner and (stale) banned resolves to Owner.
func (c *Conversation) LevelOf(id ParticipantID) PermissionLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levelOf(id)
}

func (c *Conversation) levelOf(id ParticipantID) PermissionLevel {
	switch {
	case id == c.ownerID:
		return Owner
	case c.banned.Has(id):
		return Banned
	case c.admins.Has(id):
		return Admin
	case c.members.Has(id):
		return Member
	default:
		return Apart
	}
}

// Replace splices text into both the sender's draft and the committed
// buffer, each against its own normalized range, and returns the new
// committed snapshot for broadcast. A sender below Member level gets
// ErrDenied and nothing changes.
func (c *Conversation) Replace(sender ParticipantID, sel Selection, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.levelOf(sender).MayMutate() {
		return "", errors.ErrDenied
	}

	c.draftOf(sender).Replace(sel, text)

	lo, hi := sel.Normalize(len(c.buffer))
	insert := []rune(text)
	out := make([]rune, 0, len(c.buffer)-(hi-lo)+len(insert))
	out = append(out, c.buffer[:lo]...)
	out = append(out, insert...)
	out = append(out, c.buffer[hi:]...)
	c.buffer = out

	return string(c.buffer), nil
}

// Commit solidifies the sender's draft into the message log and resets
// the draft to empty. Only an explicit commit triggers this; the final
// draft state is what gets recorded, however many replaces preceded it.
func (c *Conversation) Commit(sender ParticipantID, nick string, at time.Time) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.levelOf(sender).MayMutate() {
		return Message{}, errors.ErrDenied
	}

	msg := c.draftOf(sender).Solidify(c.ID, sender, nick, at)
	c.log = append(c.log, msg)
	return msg, nil
}

// draftOf lazily creates the sender's staging area on first use.
func (c *Conversation) draftOf(sender ParticipantID) *Draft {
	d, ok := c.drafts[sender]
	if !ok {
		d = &Draft{}
		c.drafts[sender] = d
	}
	return d
}

// Snapshot returns the committed buffer verbatim. Read access follows
// the same gate as mutation: Apart and Banned see nothing.
func (c *Conversation) Snapshot(requester ParticipantID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.levelOf(requester).MayMutate() {
		return "", errors.ErrDenied
	}
	return string(c.buffer), nil
}

// DraftOf returns the current draft content of a sender, or the empty
// string when no draft exists yet.
func (c *Conversation) DraftOf(sender ParticipantID) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d, ok := c.drafts[sender]; ok {
		return d.String()
	}
	return ""
}

// Recipients computes who should receive a broadcast of an update to
// this conversation: owner, admins and members, minus the excluded
// sender, minus anyone currently banned. The banned check runs against
// every candidate so a stale membership entry never leaks a broadcast.
func (c *Conversation) Recipients(excluding ParticipantID) []ParticipantID {
	c.mu.Lock()
	defer c.mu.Unlock()

	eligible := make(Set, len(c.members)+len(c.admins)+1)
	eligible[c.ownerID] = struct{}{}
	for id := range c.admins {
		eligible[id] = struct{}{}
	}
	for id := range c.members {
		eligible[id] = struct{}{}
	}
	delete(eligible, excluding)

	out := make([]ParticipantID, 0, len(eligible))
	for id := range eligible {
		if c.banned.Has(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// AddMember joins a participant. Joining twice is reported as
// ErrAlreadyMember, which callers treat as informational, not fatal.
func (c *Conversation) AddMember(id ParticipantID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == c.ownerID || c.admins.Has(id) || c.members.Has(id) {
		return errors.ErrAlreadyMember
	}
	c.members[id] = struct{}{}
	return nil
}

func (c *Conversation) AddAdmin(id ParticipantID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.admins[id] = struct{}{}
}

// Ban evicts the target from the admin and member sets in the same
// critical section that adds it to banned, keeping the sets disjoint.
// The owner cannot be banned.
func (c *Conversation) Ban(id ParticipantID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == c.ownerID {
		return errors.ErrDenied
	}
	c.banned[id] = struct{}{}
	delete(c.admins, id)
	delete(c.members, id)
	return nil
}

// SetOwner transfers ownership. The previous owner stays on as a plain
// member, and the new owner is purged from banned so the owner-never-
// banned invariant holds.
func (c *Conversation) SetOwner(id ParticipantID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.members[c.ownerID] = struct{}{}
	delete(c.banned, id)
	c.ownerID = id
	c.members[id] = struct{}{}
}

func (c *Conversation) OwnerID() ParticipantID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerID
}

func (c *Conversation) TogglePrivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.private = !c.private
}

func (c *Conversation) Private() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.private
}

// Buffer returns the committed text without a permission check; it is
// meant for internal consumers such as projections and tests.
func (c *Conversation) Buffer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.buffer)
}

// Log returns a copy of the append-only message log.
func (c *Conversation) Log() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.log))
	copy(out, c.log)
	return out
}
