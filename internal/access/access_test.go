package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	coursedomain "github.com/snapcourse/snapcourse-backend/internal/courses/domain"
	projectdomain "github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	userdomain "github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

func int64p(v int64) *int64 { return &v }

func TestAuthorizeProjectMutation(t *testing.T) {
	steven := &userdomain.User{ID: 7, Email: "steven@berk.edu"}

	tests := []struct {
		name      string
		requester *userdomain.User
		owner     *int64
		wantErr   error
	}{
		{name: "anonymous", requester: nil, owner: int64p(7), wantErr: apperrors.ErrUnauthenticated},
		{name: "owner", requester: steven, owner: int64p(7)},
		{name: "someone else's", requester: steven, owner: int64p(8), wantErr: apperrors.ErrForbidden},
		{name: "ownerless", requester: steven, owner: nil, wantErr: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &projectdomain.Project{ID: 1, Title: "Test proj", Owner: tt.owner}
			err := AuthorizeProjectMutation(tt.requester, p, VerbUpdate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizeProjectMutation_DenialMessage(t *testing.T) {
	err := AuthorizeProjectMutation(&userdomain.User{ID: 1}, &projectdomain.Project{Owner: int64p(2)}, VerbDelete)

	var denied *apperrors.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "You do not have permission to delete this project", denied.Message)
}

func TestAuthorizeCourseDeletion(t *testing.T) {
	enrollments := []coursedomain.Enrollment{
		{UserID: 123456, CourseID: 1, Role: coursedomain.RoleTeacher},
		{UserID: 5, CourseID: 1, Role: coursedomain.RoleStudent},
	}

	assert.ErrorIs(t, AuthorizeCourseDeletion(nil, enrollments), apperrors.ErrUnauthenticated)
	assert.NoError(t, AuthorizeCourseDeletion(&userdomain.User{ID: 123456}, enrollments))

	err := AuthorizeCourseDeletion(&userdomain.User{ID: 5}, enrollments)
	var denied *apperrors.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "You do not have permission to delete this course", denied.Message)

	assert.ErrorIs(t, AuthorizeCourseDeletion(&userdomain.User{ID: 99}, nil), apperrors.ErrForbidden)
}

func TestProjectListScope(t *testing.T) {
	jwang := &userdomain.User{ID: 3}

	tests := []struct {
		name       string
		requester  *userdomain.User
		target     *int64
		wantOwner  *int64
		wantPublic bool
	}{
		{name: "owner lists self", requester: jwang, target: int64p(3), wantOwner: int64p(3), wantPublic: false},
		{name: "anonymous lists user", requester: nil, target: int64p(3), wantOwner: int64p(3), wantPublic: true},
		{name: "other user lists user", requester: jwang, target: int64p(4), wantOwner: int64p(4), wantPublic: true},
		{name: "signed in without target", requester: jwang, target: nil, wantOwner: int64p(3), wantPublic: false},
		{name: "anonymous without target", requester: nil, target: nil, wantOwner: nil, wantPublic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ProjectListScope(tt.requester, tt.target)
			assert.Equal(t, tt.wantOwner, f.OwnerID)
			assert.Equal(t, tt.wantPublic, f.PublicOnly)
		})
	}
}
