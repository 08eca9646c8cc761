package domain

import (
	"strings"
	"time"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
)

// Project is a piece of work owned by a user and optionally shared publicly.
// Owner is a back-reference to a user id and is nil for projects created anonymously.
type Project struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	IsPublic  bool      `json:"is_public"`
	Owner     *int64    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attributes is a partial set of project fields; nil means "leave unchanged".
type Attributes struct {
	Title    *string
	Note     *string
	IsPublic *bool
}

// Apply copies the present attributes onto p as given.
func (a Attributes) Apply(p *Project) {
	if a.Title != nil {
		p.Title = *a.Title
	}
	if a.Note != nil {
		p.Note = *a.Note
	}
	if a.IsPublic != nil {
		p.IsPublic = *a.IsPublic
	}
}

// Validate reports field violations that keep p from being persisted.
func (p *Project) Validate() error {
	verrs := apperrors.ValidationErrors{}
	if strings.TrimSpace(p.Title) == "" {
		verrs.Add("title", apperrors.MsgBlank)
	}
	return verrs.Err()
}

// ListFilter selects projects for listing. A nil OwnerID means any owner.
type ListFilter struct {
	OwnerID    *int64
	Title      string
	PublicOnly bool
}
