package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
)

func TestEnrollmentValidate(t *testing.T) {
	tests := []struct {
		role    Role
		wantErr bool
	}{
		{role: RoleTeacher},
		{role: RoleStudent},
		{role: "admin", wantErr: true},
		{role: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			err := Enrollment{UserID: 1, CourseID: 1, Role: tt.role}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAttributesNormalize(t *testing.T) {
	a := Attributes{Title: "  CS169 ", Website: " https://cs169.org "}.Normalize()
	assert.Equal(t, "CS169", a.Title)
	assert.Equal(t, "https://cs169.org", a.Website)
	assert.ErrorIs(t, Attributes{Title: "   "}.Validate(), apperrors.ErrValidation)
}
