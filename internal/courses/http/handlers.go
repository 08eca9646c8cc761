package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/access"
	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/auth"
	"github.com/snapcourse/snapcourse-backend/internal/courses/domain"
)

func coursePath(id int64) string {
	return "/courses/" + strconv.FormatInt(id, 10)
}

func (h *Handler) index(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.render.HTML(c, http.StatusOK, "courses_index.html", gin.H{
		"Title":   "Courses",
		"Courses": items,
	})
}

func (h *Handler) newForm(c *gin.Context) {
	data := gin.H{
		"Title": "New course",
		"Form":  domain.Attributes{},
	}
	if auth.CurrentUser(c) == nil {
		data["Notice"] = msgLoginToCreate
	}
	h.render.HTML(c, http.StatusOK, "courses_new.html", data)
}

// formValue reads a course field posted either as course[field] or field.
func formValue(c *gin.Context, field string) string {
	if v, ok := c.GetPostForm("course[" + field + "]"); ok {
		return v
	}
	return c.PostForm(field)
}

func (h *Handler) create(c *gin.Context) {
	attrs := domain.Attributes{
		Title:       formValue(c, "title"),
		Description: formValue(c, "description"),
		Website:     formValue(c, "website"),
	}

	course, err := h.svc.Create(c.Request.Context(), auth.CurrentUser(c), attrs)
	var verrs apperrors.ValidationErrors
	switch {
	case err == nil:
		h.render.Flash(c, msgCreated, coursePath(course.ID))
	case errors.As(err, &verrs):
		h.render.HTML(c, http.StatusUnprocessableEntity, "courses_new.html", gin.H{
			"Title":  "New course",
			"Form":   attrs,
			"Errors": verrs,
		})
	default:
		h.fail(c, err, msgLoginToCreate)
	}
}

func (h *Handler) show(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	course, err := h.svc.Show(ctx, id)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	roster, err := h.svc.Roster(ctx, id)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	isTeacher := false
	if u := auth.CurrentUser(c); u != nil {
		isTeacher = access.IsTeacher(u.ID, roster)
	}

	h.render.HTML(c, http.StatusOK, "courses_show.html", gin.H{
		"Title":     course.Title,
		"Course":    course,
		"Roster":    roster,
		"IsTeacher": isTeacher,
	})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		h.fail(c, err, msgLoginToDelete)
		return
	}
	h.render.Flash(c, msgDeleted, "/courses")
}

func (h *Handler) enroll(c *gin.Context) {
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	if _, err := h.svc.Enroll(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		h.fail(c, err, msgLoginToEnroll)
		return
	}
	h.render.Flash(c, msgEnrolled, coursePath(id))
}

func (h *Handler) courseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		h.render.Error(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// fail renders the page matching a service error. loginPrompt is shown
// above the login form when the caller must sign in first.
func (h *Handler) fail(c *gin.Context, err error, loginPrompt string) {
	var denied *apperrors.DeniedError

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		h.render.LoginRequired(c, loginPrompt)
	case errors.Is(err, apperrors.ErrNotFound):
		h.render.Error(c, http.StatusNotFound, msgNotFound)
	case errors.As(err, &denied):
		h.render.Error(c, http.StatusForbidden, denied.Message)
	default:
		h.logger.Error("Course request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		h.render.Error(c, http.StatusInternalServerError, "Something went wrong")
	}
}
