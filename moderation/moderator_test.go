package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestModerator(t *testing.T, words ...string) Moderator {
	t.Helper()
	m, err := NewModerator(words, '*')
	require.NoError(t, err)
	return m
}

func TestModerator_Censor_ReplacesMatchedWord(t *testing.T) {
	m := newTestModerator(t, "darn", "crap")

	censored, found := m.Censor("what the darn")

	require.Equal(t, "what the ****", censored)
	require.Equal(t, []string{"darn"}, found)
}

func TestModerator_Censor_CleanTextIsUntouched(t *testing.T) {
	m := newTestModerator(t, "darn")

	censored, found := m.Censor("a perfectly polite sentence")

	require.Equal(t, "a perfectly polite sentence", censored)
	require.Empty(t, found)
}

func TestModerator_Censor_FoldsLeetSpeak(t *testing.T) {
	m := newTestModerator(t, "darn")

	censored, found := m.Censor("what the d4rn")

	require.Equal(t, "what the ****", censored)
	require.Equal(t, []string{"darn"}, found)
}

func TestModerator_Censor_IgnoresCase(t *testing.T) {
	m := newTestModerator(t, "darn")

	censored, _ := m.Censor("DARN it")

	require.Equal(t, "**** it", censored)
}

func TestModerator_Censor_SpacedOutWordIsCaught(t *testing.T) {
	m := newTestModerator(t, "darn")

	censored, found := m.Censor("d a r n")

	require.Equal(t, []string{"darn"}, found)
	require.NotContains(t, censored, "d")
}

func TestModerator_Censor_EmptyInput(t *testing.T) {
	m := newTestModerator(t, "darn")

	censored, found := m.Censor("")

	require.Equal(t, "", censored)
	require.Empty(t, found)
}
