package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/auth"
	"docspot/internal/model"
)

const secret = "test-secret"

var alice = model.Identity{ID: "u1", Name: "alice", Email: "alice@example.com", Role: model.RolePatient}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.MakeToken(alice, secret, time.Minute)
	require.NoError(t, err)

	c, err := auth.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, alice, c.Identity())
}

func TestParseTokenRejects(t *testing.T) {
	good, err := auth.MakeToken(alice, secret, time.Minute)
	require.NoError(t, err)

	past := auth.Claims{
		Role: model.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, past).SignedString([]byte(secret))
	require.NoError(t, err)

	noRole := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}
	roleless, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noRole).SignedString([]byte(secret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{Role: model.RolePatient}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", good, "other"},
		{"expired", stale, secret},
		{"no role", roleless, secret},
		{"alg none", unsigned, secret},
		{"garbage", "not.a.token", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.ParseToken(tt.raw, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	tok, err := auth.MakeToken(alice, secret, 0)
	require.NoError(t, err)
	c, err := auth.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(auth.DefaultTTL), c.ExpiresAt.Time, 5*time.Second)
}
