package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, ComparePassword("correct horse battery staple", hash))
	require.False(t, ComparePassword("wrong password", hash))
}

func TestToken_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate("alice", "Alice Doe")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "Alice Doe", claims.Name)
}

func TestToken_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate("alice", "Alice Doe")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Generate("alice", "Alice Doe")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)
	require.Error(t, err)
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterRequest{Name: "Alice", Username: "alice01", Password: "longenough"}
	require.NoError(t, ValidateRegister(valid))

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Username: "alice01", Password: "longenough"}},
		{"short username", RegisterRequest{Name: "Alice", Username: "al", Password: "longenough"}},
		{"short password", RegisterRequest{Name: "Alice", Username: "alice01", Password: "short"}},
		{"non-alphanumeric username", RegisterRequest{Name: "Alice", Username: "alice 01", Password: "longenough"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, ValidateRegister(tc.req))
		})
	}
}
