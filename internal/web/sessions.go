package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionCookieName = "snapcourse_session"

	tokenKey = "token"
)

// Sessions stores the login token and flash messages in a signed cookie.
// The token itself points at a server-side session in redis.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string, maxAge time.Duration, secure bool) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// session never fails: a cookie that does not decode yields a fresh session.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, _ := s.store.Get(r, SessionCookieName)
	return sess
}

// SessionToken returns the login token carried by the request, if any.
func (s *Sessions) SessionToken(r *http.Request) string {
	token, _ := s.session(r).Values[tokenKey].(string)
	return token
}

func (s *Sessions) SetSessionToken(c *gin.Context, token string) error {
	sess := s.session(c.Request)
	sess.Values[tokenKey] = token
	return sess.Save(c.Request, c.Writer)
}

func (s *Sessions) ClearSessionToken(c *gin.Context) error {
	sess := s.session(c.Request)
	delete(sess.Values, tokenKey)
	return sess.Save(c.Request, c.Writer)
}

// AddFlash queues a message for the next rendered page.
func (s *Sessions) AddFlash(c *gin.Context, msg string) error {
	sess := s.session(c.Request)
	sess.AddFlash(msg)
	return sess.Save(c.Request, c.Writer)
}

// Flashes pops the queued messages. It must run before the response body is written.
// The messages are returned even when saving the emptied session fails.
func (s *Sessions) Flashes(c *gin.Context) ([]string, error) {
	sess := s.session(c.Request)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	err := sess.Save(c.Request, c.Writer)

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out, err
}
