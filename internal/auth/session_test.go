package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolhaven/atelier/internal/domain"
)

func TestSessionStore_LoginAndValidate(t *testing.T) {
	store := NewSessionStore("geheim", time.Hour)

	token, err := store.Login("geheim")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, store.Valid(token))
	assert.False(t, store.Valid("unknown-token"))
}

func TestSessionStore_WrongPassword(t *testing.T) {
	store := NewSessionStore("geheim", time.Hour)

	_, err := store.Login("fout")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionStore_Logout(t *testing.T) {
	store := NewSessionStore("geheim", time.Hour)

	token, err := store.Login("geheim")
	require.NoError(t, err)

	store.Logout(token)
	assert.False(t, store.Valid(token))
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore("geheim", -time.Second)

	token, err := store.Login("geheim")
	require.NoError(t, err)

	assert.False(t, store.Valid(token))
}
