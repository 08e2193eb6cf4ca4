package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hubbub/domain"
)

func TestEnvelope_Validate_RejectsUnknownKind(t *testing.T) {
	require.Error(t, Envelope{Kind: "teleport"}.Validate())
	require.Error(t, Envelope{}.Validate())
	require.NoError(t, Envelope{Kind: KindReplace}.Validate())
}

func TestEnvelope_Command_Replace(t *testing.T) {
	env := Envelope{Kind: KindReplace, Conversation: 10, Start: 2, End: 5, Text: "abc"}

	cmd := env.Command(7, time.Now())

	replace, ok := cmd.(domain.ReplaceCommand)
	require.True(t, ok)
	require.Equal(t, domain.ConversationID(10), replace.Conversation)
	require.Equal(t, domain.ParticipantID(7), replace.Sender)
	require.Equal(t, domain.Selection{Start: 2, End: 5}, replace.Selection)
	require.Equal(t, "abc", replace.Text)
}

func TestEnvelope_Command_NewConversationUsesSenderAsOwner(t *testing.T) {
	env := Envelope{Kind: KindNewConversation, Conversation: 10, Name: "general"}

	cmd := env.Command(7, time.Now())

	create, ok := cmd.(domain.NewConversationCommand)
	require.True(t, ok)
	require.Equal(t, domain.ParticipantID(7), create.Owner)
	require.Equal(t, "general", create.Name)
}

func TestEnvelope_Command_CommitCarriesServerTime(t *testing.T) {
	at := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	env := Envelope{Kind: KindCommit, Conversation: 10}

	cmd := env.Command(7, at)

	commit, ok := cmd.(domain.CommitCommand)
	require.True(t, ok)
	require.Equal(t, at, commit.At)
}

func TestEnvelope_Command_AdministrativeTargets(t *testing.T) {
	ban := Envelope{Kind: KindBan, Conversation: 10, Target: 3}.Command(7, time.Now())
	banCmd, ok := ban.(domain.BanCommand)
	require.True(t, ok)
	require.Equal(t, domain.ParticipantID(3), banCmd.Target)
	require.Equal(t, domain.ParticipantID(7), banCmd.Sender)

	transfer := Envelope{Kind: KindTransferOwner, Conversation: 10, Target: 3}.Command(7, time.Now())
	transferCmd, ok := transfer.(domain.TransferOwnerCommand)
	require.True(t, ok)
	require.Equal(t, domain.ParticipantID(3), transferCmd.Target)
}

func TestEnvelope_Command_SnapshotHasNoCommand(t *testing.T) {
	// Snapshot is the query path; it never becomes a dispatched command.
	require.Nil(t, Envelope{Kind: KindSnapshot, Conversation: 10}.Command(7, time.Now()))
}
