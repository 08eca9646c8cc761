package sqlite

import (
	"context"
	"fmt"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/courses/domain"
)

// CourseRepo is the courses.Repository view of the store.
type CourseRepo struct{ *Store }

func (s *Store) Courses() *CourseRepo { return &CourseRepo{s} }

const courseColumns = `id, title, description, website, created_at, updated_at`

func scanCourse(row scanner) (*domain.Course, error) {
	var (
		c                domain.Course
		created, updated int64
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Website, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return &c, nil
}

func scanEnrollment(row scanner) (*domain.Enrollment, error) {
	var (
		e       domain.Enrollment
		role    string
		created int64
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &role, &created); err != nil {
		return nil, err
	}
	e.Role = domain.Role(role)
	e.CreatedAt = fromMillis(created)
	return &e, nil
}

func (r *CourseRepo) Find(ctx context.Context, id int64) (*domain.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ? AND deleted_at IS NULL`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// FindByTitle returns the oldest live course with the given title.
func (r *CourseRepo) FindByTitle(ctx context.Context, title string) (*domain.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE title = ? AND deleted_at IS NULL ORDER BY id ASC LIMIT 1`, title))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CourseRepo) CreateWithTeacher(ctx context.Context, c *domain.Course, teacherID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(r.now())
	res, err := tx.ExecContext(ctx,
		`INSERT INTO courses (title, description, website, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Website, now, now)
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO enrollments (user_id, course_id, role, created_at) VALUES (?, ?, ?, ?)`,
		teacherID, id, string(domain.RoleTeacher), now); err != nil {
		return mapErr(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	c.ID = id
	c.CreatedAt = fromMillis(now)
	c.UpdatedAt = fromMillis(now)
	return nil
}

// Delete soft-deletes the course; its enrollments go with it when the row is purged.
func (r *CourseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courses SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, toMillis(r.now()), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CourseRepo) Enrollments(ctx context.Context, courseID int64) ([]domain.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, course_id, role, created_at FROM enrollments WHERE course_id = ? ORDER BY id ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *CourseRepo) Enroll(ctx context.Context, e *domain.Enrollment) error {
	if err := e.Validate(); err != nil {
		return err
	}
	now := toMillis(r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO enrollments (user_id, course_id, role, created_at) VALUES (?, ?, ?, ?)`,
		e.UserID, e.CourseID, string(e.Role), now)
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	e.CreatedAt = fromMillis(now)
	return nil
}

func (r *CourseRepo) FindEnrollment(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, course_id, role, created_at FROM enrollments WHERE user_id = ? AND course_id = ?`,
		userID, courseID))
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}
