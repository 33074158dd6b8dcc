// internal/token/token_test.go
package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyToken(t *testing.T) {
	maker := NewMaker("test-secret-key", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	tok, err := maker.CreateToken(userID, "alice", true, TypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	payload, err := maker.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, "alice", payload.Username)
	assert.True(t, payload.IsStaff)
	assert.Equal(t, TypeAccess, payload.Type)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), payload.Expires, time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	maker := NewMaker("test-secret-key", -time.Minute, 24*time.Hour)

	tok, err := maker.CreateToken(uuid.New(), "alice", false, TypeAccess)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok)
	require.Error(t, err)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	maker := NewMaker("key-one", 15*time.Minute, 24*time.Hour)
	other := NewMaker("key-two", 15*time.Minute, 24*time.Hour)

	tok, err := maker.CreateToken(uuid.New(), "alice", false, TypeAccess)
	require.NoError(t, err)

	_, err = other.VerifyToken(tok)
	require.Error(t, err)
}

func TestRefreshTokenCarriesType(t *testing.T) {
	maker := NewMaker("test-secret-key", 15*time.Minute, 24*time.Hour)

	tok, err := maker.CreateToken(uuid.New(), "bob", false, TypeRefresh)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, payload.Type)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), payload.Expires, time.Minute)
}
