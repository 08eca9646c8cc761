package http

import (
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/courses/service"
	"github.com/snapcourse/snapcourse-backend/internal/web"
)

// Handler serves the course pages.
type Handler struct {
	svc    *service.CourseService
	render *web.Renderer
	logger *zap.Logger
}

func New(svc *service.CourseService, render *web.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, render: render, logger: logger}
}

const (
	msgLoginToCreate = "Log in to create a course"
	msgLoginToDelete = "Log in to delete a course"
	msgLoginToEnroll = "Log in to enroll in a course"
	msgCreated       = "You have created this course"
	msgDeleted       = "Course has been deleted"
	msgEnrolled      = "You have enrolled in this course"
	msgNotFound      = "Course not found"
)
