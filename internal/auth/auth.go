// Package auth issues and verifies the bearer tokens the gRPC server hands
// out after Authenticate or Resume.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"docspot/internal/model"
)

var ErrBadToken = errors.New("invalid token")

const DefaultTTL = time.Hour

type Claims struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity rebuilds the signed-in user carried by the token.
func (c *Claims) Identity() model.Identity {
	return model.Identity{ID: c.Subject, Name: c.Name, Email: c.Email, Role: c.Role}
}

func MakeToken(id model.Identity, secret string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	c := Claims{
		Name:  id.Name,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	if c.Subject == "" || !c.Role.Valid() {
		return nil, ErrBadToken
	}
	return c, nil
}
