package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	userservice "github.com/snapcourse/snapcourse-backend/internal/users/service"
)

// createUser registers an account from {"user": {"email", "password"}}.
func (h *Handler) createUser(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	creds := req.credentials()

	u, err := h.authService.Register(c.Request.Context(), creds.Email, creds.Password)
	var verrs apperrors.ValidationErrors
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"user": u})
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "email " + userservice.MsgEmailTaken})
	default:
		h.logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// createToken exchanges credentials for a bearer token.
func (h *Handler) createToken(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	u, token, exp, err := h.authService.IssueToken(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidLogin})
		return
	}
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": exp.UTC(),
		"user":       u,
	})
}
