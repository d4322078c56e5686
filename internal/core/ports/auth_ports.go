package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/bettrack/api/internal/core/domain"
)

type RefreshTokenRepository interface {
	Store(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	// Revoke flips the revoked flag only if the row is still active and
	// reports whether this call did the flip. The conditional update is
	// what makes refresh rotation single-use under concurrency.
	Revoke(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// AccessClaims is the identity carried inside a verified access token.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

type TokenSigner interface {
	Sign(user *domain.User) (string, error)
	Verify(token string) (*AccessClaims, error)
}

// AuthResult is what every successful credential operation returns: a
// fresh token pair and the public user projection.
type AuthResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Revoke(ctx context.Context, refreshToken string) error
	Validate(accessToken string) bool
	CleanupExpired(ctx context.Context) (int64, error)
}
