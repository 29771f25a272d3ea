package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUserToken_ParseToken(t *testing.T) {
	maker := NewJWTMaker("test_secret", time.Hour)

	token, err := maker.GenerateUserToken(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestGenerateAdminToken(t *testing.T) {
	maker := NewJWTMaker("test_secret", time.Hour)

	token, err := maker.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 0, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseToken_WrongKey(t *testing.T) {
	maker := NewJWTMaker("test_secret", time.Hour)
	other := NewJWTMaker("other_secret", time.Hour)

	token, err := maker.GenerateUserToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test_secret", -time.Minute)

	token, err := maker.GenerateUserToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker("test_secret", time.Hour)

	_, err := maker.ParseToken("not.a.token")
	assert.Error(t, err)
}
