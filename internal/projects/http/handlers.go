package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/auth"
	"github.com/snapcourse/snapcourse-backend/internal/projects/service"
)

const loginPath = "/login"

func (h *Handler) list(c *gin.Context) {
	q := service.ListQuery{Title: c.Query("title")}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		q.UserID = &id
	}
	h.respondList(c, q)
}

func (h *Handler) listForUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	h.respondList(c, service.ListQuery{UserID: &id, Title: c.Query("title")})
}

func (h *Handler) respondList(c *gin.Context, q service.ListQuery) {
	items, err := h.svc.List(c.Request.Context(), auth.CurrentUser(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) show(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.Show(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	req, ok := bindProject(c)
	if !ok {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.CurrentUser(c), req.attributes())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", "/api/v1/projects/"+strconv.FormatInt(p.ID, 10))
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	if !h.requireUser(c) {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}
	req, ok := bindProject(c)
	if !ok {
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), auth.CurrentUser(c), id, req.attributes()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) delete(c *gin.Context) {
	if !h.requireUser(c) {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireUser redirects anonymous callers before the id or body is looked at.
func (h *Handler) requireUser(c *gin.Context) bool {
	if auth.CurrentUser(c) == nil {
		h.fail(c, apperrors.ErrUnauthenticated)
		return false
	}
	return true
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// Ids are numeric, so anything else cannot exist.
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return 0, false
	}
	return id, true
}

func bindProject(c *gin.Context) (projectReq, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return projectReq{}, false
	}
	req, err := decodeProjectReq(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return projectReq{}, false
	}
	return req, true
}

// fail maps a service error onto the API's status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	var verrs apperrors.ValidationErrors
	var denied *apperrors.DeniedError

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.Redirect(http.StatusMovedPermanently, loginPath)
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.As(err, &denied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": denied.Message})
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
	default:
		h.logger.Error("Project request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
