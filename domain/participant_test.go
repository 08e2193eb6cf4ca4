package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hubbub/errors"
)

func TestValidateNick_AcceptsBounds(t *testing.T) {
	require.NoError(t, ValidateNick("a"))
	require.NoError(t, ValidateNick(strings.Repeat("x", 31)))
	require.NoError(t, ValidateNick("héloïse"))
}

func TestValidateNick_RejectsEmptyAndTooLong(t *testing.T) {
	require.ErrorIs(t, ValidateNick(""), errors.ErrInvalidNick)
	require.ErrorIs(t, ValidateNick(strings.Repeat("x", 32)), errors.ErrInvalidNick)
}
