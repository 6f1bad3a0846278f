package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenID(t *testing.T) {
	id, err := ParseTokenID("42")
	require.NoError(t, err)
	assert.Equal(t, TokenID(42), id)
	assert.Equal(t, "42", id.String())

	_, err = ParseTokenID("")
	assert.Error(t, err)
	_, err = ParseTokenID("-1")
	assert.Error(t, err)
	_, err = ParseTokenID("0x2a")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, ok := ParseAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.True(t, ok)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", addr.Hex())

	// Case-insensitive input normalizes to checksum form.
	lower, ok := ParseAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	require.True(t, ok)
	assert.Equal(t, addr, lower)

	_, ok = ParseAddress("not-an-address")
	assert.False(t, ok)
	_, ok = ParseAddress("0x1234")
	assert.False(t, ok)
}
