package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	coursedomain "github.com/snapcourse/snapcourse-backend/internal/courses/domain"
	projectdomain "github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	userdomain "github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapcourse.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func int64p(v int64) *int64 { return &v }

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ", nil)
	assert.Error(t, err)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	repo := openTempStore(t).Users()

	u := &userdomain.User{Email: "steven@berk.edu", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.FindByEmail(ctx, "steven@berk.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "steven@berk.edu", byID.Email)

	err = repo.Create(ctx, &userdomain.User{Email: "steven@berk.edu", PasswordHash: "x"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjects_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTempStore(t).Projects()

	p := &projectdomain.Project{Title: "Test Project", Note: "A note", IsPublic: true, Owner: int64p(1)}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := repo.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Project", got.Title)
	assert.True(t, got.IsPublic)
	require.NotNil(t, got.Owner)
	assert.Equal(t, int64(1), *got.Owner)

	anon := &projectdomain.Project{Title: "Anonymous"}
	require.NoError(t, repo.Create(ctx, anon))
	got, err = repo.Find(ctx, anon.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
	assert.False(t, got.IsPublic)

	p.Title = "New Title"
	p.IsPublic = false
	require.NoError(t, repo.Update(ctx, p))
	got, err = repo.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.False(t, got.IsPublic)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Find(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), apperrors.ErrNotFound)
}

func TestProjects_List(t *testing.T) {
	ctx := context.Background()
	repo := openTempStore(t).Projects()

	seed := []projectdomain.Project{
		{Title: "a", IsPublic: true, Owner: int64p(1)},
		{Title: "b", IsPublic: false, Owner: int64p(1)},
		{Title: "c", IsPublic: true, Owner: int64p(2)},
		{Title: "a", IsPublic: false, Owner: int64p(2)},
		{Title: "gone", IsPublic: true, Owner: int64p(1)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}
	require.NoError(t, repo.Delete(ctx, seed[4].ID))

	titles := func(ps []projectdomain.Project) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Title)
		}
		return out
	}

	tests := []struct {
		name   string
		filter projectdomain.ListFilter
		want   []string
	}{
		{name: "all", filter: projectdomain.ListFilter{}, want: []string{"a", "b", "c", "a"}},
		{name: "owner", filter: projectdomain.ListFilter{OwnerID: int64p(1)}, want: []string{"a", "b"}},
		{name: "owner public", filter: projectdomain.ListFilter{OwnerID: int64p(1), PublicOnly: true}, want: []string{"a"}},
		{name: "public", filter: projectdomain.ListFilter{PublicOnly: true}, want: []string{"a", "c"}},
		{name: "title", filter: projectdomain.ListFilter{Title: "a"}, want: []string{"a", "a"}},
		{name: "no match", filter: projectdomain.ListFilter{OwnerID: int64p(9)}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestCourses(t *testing.T) {
	ctx := context.Background()
	repo := openTempStore(t).Courses()

	c := &coursedomain.Course{Title: "CS169", Description: "Software Engineering", Website: "https://cs169.org"}
	require.NoError(t, repo.CreateWithTeacher(ctx, c, 7))
	assert.NotZero(t, c.ID)

	byTitle, err := repo.FindByTitle(ctx, "CS169")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byTitle.ID)

	roster, err := repo.Enrollments(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, int64(7), roster[0].UserID)
	assert.Equal(t, coursedomain.RoleTeacher, roster[0].Role)

	e := &coursedomain.Enrollment{UserID: 8, CourseID: c.ID, Role: coursedomain.RoleStudent}
	require.NoError(t, repo.Enroll(ctx, e))
	assert.NotZero(t, e.ID)

	dup := &coursedomain.Enrollment{UserID: 8, CourseID: c.ID, Role: coursedomain.RoleStudent}
	assert.ErrorIs(t, repo.Enroll(ctx, dup), apperrors.ErrConflict)

	bogus := &coursedomain.Enrollment{UserID: 9, CourseID: c.ID, Role: "admin"}
	assert.ErrorIs(t, repo.Enroll(ctx, bogus), apperrors.ErrValidation)

	found, err := repo.FindEnrollment(ctx, 8, c.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.Find(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindByTitle(ctx, "CS169")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), apperrors.ErrNotFound)
}

func TestPurgeDeleted(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	old := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return old }

	stale := &projectdomain.Project{Title: "stale"}
	require.NoError(t, store.Projects().Create(ctx, stale))
	require.NoError(t, store.Projects().Delete(ctx, stale.ID))

	course := &coursedomain.Course{Title: "Old course"}
	require.NoError(t, store.Courses().CreateWithTeacher(ctx, course, 1))
	require.NoError(t, store.Courses().Delete(ctx, course.ID))

	store.now = time.Now
	recent := &projectdomain.Project{Title: "recent"}
	require.NoError(t, store.Projects().Create(ctx, recent))
	require.NoError(t, store.Projects().Delete(ctx, recent.ID))

	n, err := store.PurgeDeleted(ctx, old.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM enrollments`).Scan(&count))
	assert.Equal(t, 0, count)
}
