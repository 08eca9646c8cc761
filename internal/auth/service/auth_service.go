package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/auth"
	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

// Credentials checks an email/password pair and creates accounts.
type Credentials interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// SessionStore opens and closes browser sessions.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService turns verified credentials into browser sessions or API tokens.
type AuthService struct {
	users    Credentials
	sessions SessionStore
	tokens   *auth.TokenIssuer
	logger   *zap.Logger
}

func NewAuthService(users Credentials, sessions SessionStore, tokens *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. It returns the session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("open session: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", u.ID))
	return u, token, nil
}

// SignUp registers a user and logs them straight in.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.Register(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("open session: %w", err)
	}
	return u, token, nil
}

// Register creates an account without opening a session.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.users.Register(ctx, email, password)
}

// Logout revokes the session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// IssueToken verifies credentials and returns a signed API token.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.logger.Info("Issued API token", zap.Int64("user_id", u.ID), zap.Time("expires_at", exp))
	return u, token, exp, nil
}
