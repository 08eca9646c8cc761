package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/courses/domain"
)

// CourseRepo is the courses.Repository view of the store.
type CourseRepo struct{ *Store }

func (s *Store) Courses() *CourseRepo { return &CourseRepo{s} }

const courseColumns = `id, title, description, website, created_at, updated_at`

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Website, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepo) Find(ctx context.Context, id int64) (*domain.Course, error) {
	q := `select ` + courseColumns + ` from courses where id = $1 and deleted_at is null;`
	c, err := scanCourse(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// FindByTitle returns the oldest live course with the given title.
func (r *CourseRepo) FindByTitle(ctx context.Context, title string) (*domain.Course, error) {
	q := `select ` + courseColumns + ` from courses where title = $1 and deleted_at is null order by id asc limit 1;`
	c, err := scanCourse(r.db.QueryRow(ctx, q, title))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	q := `select ` + courseColumns + ` from courses where deleted_at is null order by id asc;`
	rows, err := r.db.Query(ctx, q)
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
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertCourse = `
insert into courses (title, description, website)
values ($1, $2, $3)
returning id, created_at, updated_at;
`
	if err := tx.QueryRow(ctx, insertCourse, c.Title, c.Description, c.Website).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return mapErr(err)
	}

	const insertTeacher = `insert into enrollments (user_id, course_id, role) values ($1, $2, $3);`
	if _, err := tx.Exec(ctx, insertTeacher, teacherID, c.ID, string(domain.RoleTeacher)); err != nil {
		return mapErr(err)
	}

	return tx.Commit(ctx)
}

// Delete soft-deletes the course; its enrollments go with it when the row is purged.
func (r *CourseRepo) Delete(ctx context.Context, id int64) error {
	const q = `update courses set deleted_at = now() where id = $1 and deleted_at is null;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CourseRepo) Enrollments(ctx context.Context, courseID int64) ([]domain.Enrollment, error) {
	const q = `
select id, user_id, course_id, role, created_at
from enrollments
where course_id = $1
order by id asc;
`
	rows, err := r.db.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Enrollment{}
	for rows.Next() {
		var e domain.Enrollment
		var role string
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &role, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Role = domain.Role(role)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *CourseRepo) Enroll(ctx context.Context, e *domain.Enrollment) error {
	if err := e.Validate(); err != nil {
		return err
	}
	const q = `
insert into enrollments (user_id, course_id, role)
values ($1, $2, $3)
returning id, created_at;
`
	err := r.db.QueryRow(ctx, q, e.UserID, e.CourseID, string(e.Role)).Scan(&e.ID, &e.CreatedAt)
	return mapErr(err)
}

func (r *CourseRepo) FindEnrollment(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	const q = `
select id, user_id, course_id, role, created_at
from enrollments
where user_id = $1 and course_id = $2;
`
	var e domain.Enrollment
	var role string
	if err := r.db.QueryRow(ctx, q, userID, courseID).Scan(&e.ID, &e.UserID, &e.CourseID, &role, &e.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	e.Role = domain.Role(role)
	return &e, nil
}
