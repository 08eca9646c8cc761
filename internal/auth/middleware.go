package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

type UserFinder interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}

type SessionLookup interface {
	Lookup(ctx context.Context, token string) (int64, error)
}

// CookieTokens reads the session token carried by the browser cookie.
type CookieTokens interface {
	SessionToken(r *http.Request) string
}

// Resolver collects what WithUser needs to identify a caller.
// Tokens, Sessions and Cookies are optional.
type Resolver struct {
	Users    UserFinder
	Tokens   *TokenIssuer
	Sessions SessionLookup
	Cookies  CookieTokens
	Logger   *zap.Logger
}

// WithUser resolves the current user from a bearer token, falling back to the
// cookie session. It never rejects a request: an unresolved caller is anonymous.
func WithUser(res Resolver) gin.HandlerFunc {
	logger := res.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, ok := res.fromBearer(c)
		if !ok {
			userID, ok = res.fromCookie(ctx, c.Request, logger)
		}

		if ok {
			u, err := res.Users.Get(ctx, userID)
			switch {
			case err == nil:
				SetCurrentUser(c, u)
			case errors.Is(err, apperrors.ErrNotFound):
				logger.Debug("Session refers to a missing user", zap.Int64("user_id", userID))
			default:
				logger.Warn("Failed to load current user", zap.Int64("user_id", userID), zap.Error(err))
			}
		}

		c.Next()
	}
}

func (res Resolver) fromBearer(c *gin.Context) (int64, bool) {
	if res.Tokens == nil {
		return 0, false
	}
	raw := extractToken(c)
	if raw == "" {
		return 0, false
	}
	id, err := res.Tokens.Parse(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (res Resolver) fromCookie(ctx context.Context, r *http.Request, logger *zap.Logger) (int64, bool) {
	if res.Cookies == nil || res.Sessions == nil {
		return 0, false
	}
	token := res.Cookies.SessionToken(r)
	if token == "" {
		return 0, false
	}
	id, err := res.Sessions.Lookup(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Session lookup failed", zap.Error(err))
		}
		return 0, false
	}
	return id, true
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
