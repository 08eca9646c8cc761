package service

import (
	"context"
	"sync"
	"time"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/courses/domain"
)

type mockCourseRepo struct {
	mu          sync.Mutex
	nextID      int64
	nextEnrID   int64
	courses     []domain.Course
	deleted     map[int64]bool
	enrollments []domain.Enrollment
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{deleted: map[int64]bool{}}
}

func (r *mockCourseRepo) Find(_ context.Context, id int64) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.ID == id && !r.deleted[id] {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *mockCourseRepo) FindByTitle(_ context.Context, title string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Title == title && !r.deleted[c.ID] {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *mockCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		if !r.deleted[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) create(c *domain.Course) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.courses = append(r.courses, *c)
}

func (r *mockCourseRepo) CreateWithTeacher(_ context.Context, c *domain.Course, teacherID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.create(c)
	r.addEnrollment(&domain.Enrollment{UserID: teacherID, CourseID: c.ID, Role: domain.RoleTeacher})
	return nil
}

func (r *mockCourseRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}

func (r *mockCourseRepo) Enrollments(_ context.Context, courseID int64) ([]domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Enrollment
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) addEnrollment(e *domain.Enrollment) {
	r.nextEnrID++
	e.ID = r.nextEnrID
	e.CreatedAt = time.Now()
	r.enrollments = append(r.enrollments, *e)
}

func (r *mockCourseRepo) Enroll(_ context.Context, e *domain.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return apperrors.ErrConflict
		}
	}
	r.addEnrollment(e)
	return nil
}

func (r *mockCourseRepo) FindEnrollment(_ context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			e := e
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// seedCourse stores a course with no enrollments and returns it.
func (r *mockCourseRepo) seedCourse(title string) domain.Course {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := domain.Course{Title: title}
	r.create(&c)
	return c
}

func (r *mockCourseRepo) seedEnrollment(userID, courseID int64, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addEnrollment(&domain.Enrollment{UserID: userID, CourseID: courseID, Role: role})
}
