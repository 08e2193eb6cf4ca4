package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hubbub/domain"
	"hubbub/errors"
	"hubbub/sink"
)

func TestRegistry_RegisterParticipant_DuplicateIsConflict(t *testing.T) {
	registry := NewRegistry()

	p, err := registry.RegisterParticipant(1, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", p.Nick)

	_, err = registry.RegisterParticipant(1, "bob")
	require.ErrorIs(t, err, errors.ErrConflict)
}

func TestRegistry_RegisterParticipant_RejectsMalformedNick(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.RegisterParticipant(1, "this-nickname-is-way-too-long-to-be-accepted")

	require.ErrorIs(t, err, errors.ErrInvalidNick)
}

func TestRegistry_CreateConversation_UnknownOwnerIsNotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.CreateConversation(10, 999, "general")

	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestRegistry_CreateConversation_DuplicateIsConflict(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.RegisterParticipant(1, "alice")
	require.NoError(t, err)

	_, err = registry.CreateConversation(10, 1, "general")
	require.NoError(t, err)

	_, err = registry.CreateConversation(10, 1, "again")
	require.ErrorIs(t, err, errors.ErrConflict)
}

func TestRegistry_Join_UnknownTargetsAreNotFound(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.RegisterParticipant(1, "alice")
	require.NoError(t, err)
	_, err = registry.CreateConversation(10, 1, "general")
	require.NoError(t, err)

	require.ErrorIs(t, registry.Join(99, 1), errors.ErrNotFound)
	require.ErrorIs(t, registry.Join(10, 99), errors.ErrNotFound)
}

func TestRegistry_Join_TwiceIsAlreadyMember(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.RegisterParticipant(1, "alice")
	require.NoError(t, err)
	_, err = registry.RegisterParticipant(2, "bob")
	require.NoError(t, err)
	_, err = registry.CreateConversation(10, 1, "general")
	require.NoError(t, err)

	require.NoError(t, registry.Join(10, 2))
	require.ErrorIs(t, registry.Join(10, 2), errors.ErrAlreadyMember)
}

func TestRegistry_DeregisterParticipant_KeepsMembership(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.RegisterParticipant(1, "alice")
	require.NoError(t, err)
	_, err = registry.RegisterParticipant(2, "bob")
	require.NoError(t, err)
	convo, err := registry.CreateConversation(10, 1, "general")
	require.NoError(t, err)
	require.NoError(t, registry.Join(10, 2))

	registry.DeregisterParticipant(2)

	// The identity is gone but the membership survives the disconnect.
	_, err = registry.Participant(2)
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.Equal(t, domain.Member, convo.LevelOf(2))
}

func TestRegistry_SinksFor_SkipsSenderAndOffline(t *testing.T) {
	registry := NewRegistry()
	for id, nick := range map[domain.ParticipantID]string{1: "alice", 2: "bob", 3: "carol"} {
		_, err := registry.RegisterParticipant(id, nick)
		require.NoError(t, err)
	}
	_, err := registry.CreateConversation(10, 1, "general")
	require.NoError(t, err)
	require.NoError(t, registry.Join(10, 2))
	require.NoError(t, registry.Join(10, 3))

	// Only bob holds a live session; carol is a member but offline.
	bobSink := sink.NewSessionSink(1)
	registry.Subscribe(2, bobSink)

	sinks := registry.SinksFor(10, 1)

	require.Len(t, sinks, 1)
	require.Same(t, bobSink, sinks[0].(*sink.SessionSink))
}

func TestRegistry_SinksFor_UnknownConversationIsEmpty(t *testing.T) {
	registry := NewRegistry()

	require.Empty(t, registry.SinksFor(99, 0))
}
