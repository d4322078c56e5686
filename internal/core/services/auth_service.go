package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type AuthService struct {
	userRepo   ports.UserRepository
	tokenRepo  ports.RefreshTokenRepository
	hasher     ports.PasswordHasher
	signer     ports.TokenSigner
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewAuthService(
	userRepo ports.UserRepository,
	tokenRepo ports.RefreshTokenRepository,
	hasher ports.PasswordHasher,
	signer ports.TokenSigner,
	refreshTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		hasher:     hasher,
		signer:     signer,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		// Same error as a wrong password; the distinction only exists in
		// the server log.
		s.log.Warn("login for unknown email", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.log.Warn("login password mismatch", zap.String("user_id", user.ID.String()))
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return result, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return result, nil
}

// Refresh rotates the presented refresh token: the row is revoked with a
// conditional update and a new pair is issued. A token that was already
// rotated, revoked or expired always fails, which makes every refresh
// token single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", domain.ErrValidation)
	}

	entity, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if entity == nil || !entity.IsActive(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	// Revoke-if-active: if another request rotated this token between the
	// read above and now, the update matches zero rows and this request
	// loses.
	revoked, err := s.tokenRepo.Revoke(ctx, entity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !revoked {
		s.log.Warn("refresh token replay rejected", zap.String("token_id", entity.ID.String()))
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, entity.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrTokenInvalid
	}

	return s.issueTokens(ctx, user)
}

// Revoke is the logout path. Unknown and already-revoked tokens are a
// no-op, not an error.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	entity, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}
	if entity == nil || entity.Revoked {
		return nil
	}

	if _, err := s.tokenRepo.Revoke(ctx, entity.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Validate is a stateless signature and expiry check. Malformed, expired
// and tampered tokens all collapse to false.
func (s *AuthService) Validate(accessToken string) bool {
	_, err := s.signer.Verify(accessToken)
	return err == nil
}

// CleanupExpired removes expired refresh-token rows. It runs from a
// separate maintenance command, never from the request path.
func (s *AuthService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	if n > 0 {
		s.log.Info("expired refresh tokens removed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	accessToken, err := s.signer.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	entity := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Store(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &ports.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
