package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

const minPasswordLen = 8

// MsgEmailTaken describes a registration whose email already has an account.
const MsgEmailTaken = "has already been taken"

// Repository is the persistence surface the user service needs.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserService handles sign-up and credential checks
type UserService struct {
	repo   Repository
	cost   int
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repo Repository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cost: bcrypt.DefaultCost, logger: logger}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register creates a user with a hashed password. A taken email yields a
// wrapped apperrors.ErrConflict.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)

	verrs := apperrors.ValidationErrors{}
	switch {
	case email == "":
		verrs.Add("email", apperrors.MsgBlank)
	case !strings.Contains(email, "@"):
		verrs.Add("email", "is invalid")
	}
	if len(password) < minPasswordLen {
		verrs.Add("password", fmt.Sprintf("is too short (minimum is %d characters)", minPasswordLen))
	}
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("Registered user", zap.Int64("user_id", u.ID))
	return u, nil
}

// Authenticate returns the user whose credentials match.
// Any mismatch is reported as ErrUnauthenticated so callers cannot tell which emails exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return u, nil
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
