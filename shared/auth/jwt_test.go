package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndParseIDToken(t *testing.T) {
	a := NewJWTAuthenticator("school-site", "school-site")

	token, issued, err := a.IssueIDToken("uid-1", IDTokenClaims{
		Email:        "a@x.com",
		SignInMethod: "password",
	}, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, issued.ID)

	claims, err := a.ParseIDToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "password", claims.SignInMethod)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestParseIDToken_Rejects(t *testing.T) {
	a := NewJWTAuthenticator("school-site", "school-site")

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := a.IssueIDToken("uid-1", IDTokenClaims{}, testSecret, time.Hour)
		require.NoError(t, err)

		_, err = a.ParseIDToken(token, "other-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := a.IssueIDToken("uid-1", IDTokenClaims{}, testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = a.ParseIDToken(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := NewJWTAuthenticator("another-app", "school-site")
		token, _, err := other.IssueIDToken("uid-1", IDTokenClaims{}, testSecret, time.Hour)
		require.NoError(t, err)

		_, err = a.ParseIDToken(token, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.ParseIDToken("not-a-token", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
