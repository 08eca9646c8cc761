package domain

import (
	"strings"
	"time"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
)

// Role is the capacity in which a user is enrolled in a course.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrollment links a user to a course with a role.
type Enrollment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Attributes holds the form fields a course is created from.
type Attributes struct {
	Title       string
	Description string
	Website     string
}

// Validate rejects an enrollment whose role is neither teacher nor student.
func (e Enrollment) Validate() error {
	if !e.Role.Valid() {
		return apperrors.ValidationErrors{"role": {"is invalid"}}
	}
	return nil
}

func (a Attributes) Normalize() Attributes {
	return Attributes{
		Title:       strings.TrimSpace(a.Title),
		Description: strings.TrimSpace(a.Description),
		Website:     strings.TrimSpace(a.Website),
	}
}

func (a Attributes) Validate() error {
	verrs := apperrors.ValidationErrors{}
	if strings.TrimSpace(a.Title) == "" {
		verrs.Add("title", apperrors.MsgBlank)
	}
	return verrs.Err()
}
