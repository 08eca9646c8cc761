package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	coursedomain "github.com/snapcourse/snapcourse-backend/internal/courses/domain"
	projectdomain "github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	"github.com/snapcourse/snapcourse-backend/internal/storage/migrations"
)

// openTestStore connects to TEST_DB_DSN and skips when it is unset.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	require.NoError(t, migrations.Up(migrations.DialectPostgres, dsn, nil))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `truncate users, projects, courses, enrollments restart identity cascade;`)
	require.NoError(t, err)
	return NewStore(pool)
}

func TestProjectRepo(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).Projects()

	owner := int64(1)
	p := &projectdomain.Project{Title: "Test Project", IsPublic: true, Owner: &owner}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Project", got.Title)

	public, err := repo.List(ctx, projectdomain.ListFilter{OwnerID: &owner, PublicOnly: true})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Find(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCourseRepo_Enroll(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).Courses()

	c := &coursedomain.Course{Title: "CS169"}
	require.NoError(t, repo.CreateWithTeacher(ctx, c, 7))

	e := &coursedomain.Enrollment{UserID: 8, CourseID: c.ID, Role: coursedomain.RoleStudent}
	require.NoError(t, repo.Enroll(ctx, e))
	assert.ErrorIs(t, repo.Enroll(ctx, &coursedomain.Enrollment{UserID: 8, CourseID: c.ID, Role: coursedomain.RoleStudent}), apperrors.ErrConflict)
	assert.ErrorIs(t, repo.Enroll(ctx, &coursedomain.Enrollment{UserID: 9, CourseID: c.ID, Role: "admin"}), apperrors.ErrValidation)

	roster, err := repo.Enrollments(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}
