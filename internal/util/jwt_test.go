package util

import (
	"testing"
	"time"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, model.Admin, "a@example.org", "secret", "auth.example.org", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret", "auth.example.org")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin())
}

func TestParseJWTRejectsWrongSecretAndIssuer(t *testing.T) {
	token, err := GenerateJWT(7, model.Student, "s@example.org", "secret", "auth.example.org", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other", "")
	assert.Error(t, err)

	_, err = ParseJWT(token, "secret", "someone-else")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredAndAnonymous(t *testing.T) {
	expired, err := GenerateJWT(7, model.Student, "", "secret", "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret", "")
	assert.Error(t, err)

	noUser, err := GenerateJWT(0, model.Student, "", "secret", "", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(noUser, "secret", "")
	assert.Error(t, err)
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(12), MustParseUint("12"))
	assert.Equal(t, uint(0), MustParseUint("abc"))
	assert.Equal(t, uint(0), MustParseUint("-3"))
}
