// Package auth verifies bearer tokens and decides what a verified identity
// may do. Verification never reads the document store; authorization does.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = time.Hour

// Claims is the token payload. Email is the identity; tokens issued by
// earlier deployments carry only email, iat and exp.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the verified caller for the lifetime of one request.
type Identity struct {
	Email     string
	ExpiresAt time.Time
	TokenID   string
}

// RevocationList records token ids that must no longer verify.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationList
	now     func() time.Time
}

// NewTokenManager signs with HS256 using secret. revoked may be nil, in which
// case logout is a no-op.
func NewTokenManager(secret string, ttl time.Duration, revoked RevocationList) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

// Issue creates a signed token for email.
func (m *TokenManager) Issue(email string) (string, error) {
	now := m.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyHeader extracts the bearer token from an Authorization header value
// and verifies it.
func (m *TokenManager) VerifyHeader(ctx context.Context, header string) (Identity, error) {
	if header == "" {
		return Identity{}, ErrMissingCredential
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return Identity{}, fmt.Errorf("%w: expected bearer token", ErrInvalidCredential)
	}
	return m.Verify(ctx, token)
}

// Verify checks signature, algorithm and expiry, then the revocation list.
// A failing revocation lookup is returned as is, not as ErrInvalidCredential.
func (m *TokenManager) Verify(ctx context.Context, tokenStr string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	if email == "" {
		return Identity{}, fmt.Errorf("%w: token has no identity", ErrInvalidCredential)
	}

	if m.revoked != nil && claims.ID != "" {
		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return Identity{}, fmt.Errorf("%w: token revoked", ErrInvalidCredential)
		}
	}

	return Identity{
		Email:     email,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}, nil
}

// Revoke invalidates the token behind id until its natural expiry. Tokens
// without a jti cannot be revoked and are left to expire.
func (m *TokenManager) Revoke(ctx context.Context, id Identity) error {
	if m.revoked == nil || id.TokenID == "" {
		return nil
	}
	return m.revoked.Revoke(ctx, id.TokenID, id.ExpiresAt)
}
