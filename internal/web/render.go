// Package web holds the server-rendered HTML surface: templates, the cookie
// session and flash messages.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// Install registers the page templates on the engine.
func Install(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
}

// Renderer renders a page with the current user and pending flashes filled in.
type Renderer struct {
	sessions *Sessions
	logger   *zap.Logger
}

func NewRenderer(s *Sessions, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{sessions: s, logger: logger}
}

func (rd *Renderer) Sessions() *Sessions { return rd.sessions }

func (rd *Renderer) HTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = auth.CurrentUser(c)
	flashes, err := rd.sessions.Flashes(c)
	if err != nil {
		rd.logger.Warn("Failed to clear flashes", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	data["Flashes"] = flashes
	c.HTML(status, page, data)
}

// Flash queues msg and redirects with 303 See Other.
func (rd *Renderer) Flash(c *gin.Context, msg, location string) {
	if err := rd.sessions.AddFlash(c, msg); err != nil {
		rd.logger.Warn("Failed to save flash",
			zap.String("path", c.Request.URL.Path),
			zap.String("location", location),
			zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, location)
}

// LoginRequired renders the login page with a prompt and a 401.
func (rd *Renderer) LoginRequired(c *gin.Context, prompt string) {
	rd.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
		"Title":  "Log in",
		"Notice": prompt,
		"Email":  "",
	})
}

// Error renders the generic error page.
func (rd *Renderer) Error(c *gin.Context, status int, msg string) {
	rd.HTML(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Message": msg,
	})
}
