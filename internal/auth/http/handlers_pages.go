package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	userservice "github.com/snapcourse/snapcourse-backend/internal/users/service"
)

func (h *Handler) loginPage(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Email": ""})
}

func (h *Handler) login(c *gin.Context) {
	req := h.bindCredentials(c)

	_, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		h.render.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Log in",
			"Email": req.Email,
			"Error": msgInvalidLogin,
		})
		return
	}
	if err != nil {
		h.pageError(c, err)
		return
	}

	if err := h.render.Sessions().SetSessionToken(c, token); err != nil {
		h.pageError(c, err)
		return
	}
	h.render.Flash(c, msgLoggedIn, "/courses")
}

func (h *Handler) signupPage(c *gin.Context) {
	h.render.HTML(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up", "Email": ""})
}

func (h *Handler) signup(c *gin.Context) {
	req := h.bindCredentials(c)

	_, token, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		h.signupForm(c, http.StatusUnprocessableEntity, req.Email, verrs)
		return
	}
	if errors.Is(err, apperrors.ErrConflict) {
		h.signupForm(c, http.StatusConflict, req.Email, apperrors.ValidationErrors{"email": {userservice.MsgEmailTaken}})
		return
	}
	if err != nil {
		h.pageError(c, err)
		return
	}

	if err := h.render.Sessions().SetSessionToken(c, token); err != nil {
		h.pageError(c, err)
		return
	}
	h.render.Flash(c, msgSignedUp, "/courses")
}

func (h *Handler) signupForm(c *gin.Context, status int, email string, verrs apperrors.ValidationErrors) {
	h.render.HTML(c, status, "signup.html", gin.H{
		"Title":  "Sign up",
		"Email":  email,
		"Errors": verrs,
	})
}

// bindCredentials reads the form. A body that does not bind leaves the fields
// empty, which the credential checks then reject.
func (h *Handler) bindCredentials(c *gin.Context) credentialsReq {
	var req credentialsReq
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Failed to bind credentials", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return credentialsReq{}
	}
	return req
}

func (h *Handler) logout(c *gin.Context) {
	sessions := h.render.Sessions()
	if token := sessions.SessionToken(c.Request); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("Failed to revoke session", zap.Error(err))
		}
	}
	if err := sessions.ClearSessionToken(c); err != nil {
		h.pageError(c, err)
		return
	}
	h.render.Flash(c, msgLoggedOut, "/courses")
}

func (h *Handler) pageError(c *gin.Context, err error) {
	h.logger.Error("Auth page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.render.Error(c, http.StatusInternalServerError, "Something went wrong")
}
