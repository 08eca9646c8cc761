package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	"github.com/snapcourse/snapcourse-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc    *service.ProjectService
	logger *zap.Logger
}

func New(svc *service.ProjectService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// flexBool accepts true/false, 0/1 and their string spellings.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	raw := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch raw {
	case "true", "1", "t", "on":
		*b = true
	case "false", "0", "f", "off", "", "null":
		*b = false
	default:
		return fmt.Errorf("is_public: cannot parse %s as a boolean", data)
	}
	return nil
}

type projectFields struct {
	Title    *string   `json:"title"`
	Note     *string   `json:"note"`
	IsPublic *flexBool `json:"is_public"`
}

func (f *projectFields) attributes() domain.Attributes {
	if f == nil {
		return domain.Attributes{}
	}
	attrs := domain.Attributes{Title: f.Title, Note: f.Note}
	if f.IsPublic != nil {
		v := bool(*f.IsPublic)
		attrs.IsPublic = &v
	}
	return attrs
}

// projectReq is the request envelope. Older clients send project_params.
type projectReq struct {
	Project       *projectFields `json:"project"`
	ProjectParams *projectFields `json:"project_params"`
}

func (r projectReq) attributes() domain.Attributes {
	if r.Project != nil {
		return r.Project.attributes()
	}
	return r.ProjectParams.attributes()
}

func decodeProjectReq(body []byte) (projectReq, error) {
	var req projectReq
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, err
	}
	return req, nil
}
