// Package auth issues and verifies the bearer tokens that identify callers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Role is the kind of account behind a token.
type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleCompany
}

// Actor is the resolved identity of a caller.
type Actor struct {
	ID   uint64 `json:"id"`
	Role Role   `json:"role"`
}

// Claims represents JWT claims
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns the identity encoded in the claims.
func (c *Claims) Actor() (Actor, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return Actor{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if !c.Role.Valid() {
		return Actor{}, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}
	return Actor{ID: id, Role: c.Role}, nil
}

// TokenManager signs and validates HS256 tokens.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	revoker TokenRevoker
	now     func() time.Time
}

// NewTokenManager creates a TokenManager. revoker may be nil, in which case
// logout cannot invalidate a token before it expires.
func NewTokenManager(secret string, ttl time.Duration, revoker TokenRevoker) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

// Issue signs a token for the actor and returns it with its expiry.
func (m *TokenManager) Issue(actor Actor) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(actor.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses the token, checks its signature, expiry and revocation and
// returns its claims together with the resolved actor.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, Actor{}, ErrInvalidToken
	}

	actor, err := claims.Actor()
	if err != nil {
		return nil, Actor{}, err
	}

	if m.revoker != nil && claims.ID != "" {
		revoked, err := m.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, Actor{}, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, Actor{}, ErrTokenRevoked
		}
	}

	return claims, actor, nil
}

// Revoke invalidates the token described by claims until it would have
// expired anyway. It reports whether a revocation was actually recorded.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) (bool, error) {
	if m.revoker == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return false, nil
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return false, nil
	}

	if err := m.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return true, nil
}
