package http

import (
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/auth/service"
	"github.com/snapcourse/snapcourse-backend/internal/web"
)

type Handler struct {
	authService *service.AuthService
	render      *web.Renderer
	logger      *zap.Logger
}

func New(authService *service.AuthService, render *web.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		authService: authService,
		render:      render,
		logger:      logger,
	}
}

type credentialsReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// signUpReq accepts {"user": {...}} as well as a bare object.
type signUpReq struct {
	User *credentialsReq `json:"user"`
	credentialsReq
}

func (r signUpReq) credentials() credentialsReq {
	if r.User != nil {
		return *r.User
	}
	return r.credentialsReq
}

const (
	msgInvalidLogin = "Invalid email or password"
	msgLoggedIn     = "Logged in successfully"
	msgSignedUp     = "Welcome to SnapCourse"
	msgLoggedOut    = "Logged out"
)
