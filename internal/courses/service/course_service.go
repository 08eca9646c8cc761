package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/access"
	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/courses/domain"
	userdomain "github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

// Repository provides persistence operations for courses and their enrollments.
type Repository interface {
	Find(ctx context.Context, id int64) (*domain.Course, error)
	FindByTitle(ctx context.Context, title string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	// CreateWithTeacher stores c and a teacher enrollment for teacherID atomically.
	CreateWithTeacher(ctx context.Context, c *domain.Course, teacherID int64) error
	Delete(ctx context.Context, id int64) error
	Enrollments(ctx context.Context, courseID int64) ([]domain.Enrollment, error)
	// Enroll returns apperrors.ErrConflict when the user is already enrolled.
	Enroll(ctx context.Context, e *domain.Enrollment) error
	FindEnrollment(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error)
}

// CourseService handles course-related business logic
type CourseService struct {
	repo   Repository
	logger *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(repo Repository, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, logger: logger}
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) Show(ctx context.Context, id int64) (*domain.Course, error) {
	return s.repo.Find(ctx, id)
}

func (s *CourseService) FindByTitle(ctx context.Context, title string) (*domain.Course, error) {
	return s.repo.FindByTitle(ctx, title)
}

// Roster lists the enrollments of a course in creation order.
func (s *CourseService) Roster(ctx context.Context, courseID int64) ([]domain.Enrollment, error) {
	if _, err := s.repo.Find(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.Enrollments(ctx, courseID)
}

// Create stores a course and enrolls its creator as teacher.
func (s *CourseService) Create(ctx context.Context, requester *userdomain.User, attrs domain.Attributes) (*domain.Course, error) {
	if err := access.Authenticated(requester); err != nil {
		return nil, err
	}

	attrs = attrs.Normalize()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Course{
		Title:       attrs.Title,
		Description: attrs.Description,
		Website:     attrs.Website,
	}
	if err := s.repo.CreateWithTeacher(ctx, c, requester.ID); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info("Created new course",
		zap.Int64("course_id", c.ID),
		zap.String("title", c.Title),
		zap.Int64("teacher_id", requester.ID))
	return c, nil
}

// Delete removes a course. Only a user enrolled as teacher may do so.
// Checks run in order: authentication, existence, enrollment role.
func (s *CourseService) Delete(ctx context.Context, requester *userdomain.User, id int64) error {
	if err := access.Authenticated(requester); err != nil {
		return err
	}

	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}

	enrollments, err := s.repo.Enrollments(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("load enrollments: %w", err)
	}
	if err := access.AuthorizeCourseDeletion(requester, enrollments); err != nil {
		s.logger.Warn("Course deletion denied", zap.Int64("course_id", c.ID), zap.Int64("user_id", requester.ID))
		return err
	}

	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	s.logger.Info("Deleted course", zap.Int64("course_id", c.ID), zap.Int64("user_id", requester.ID))
	return nil
}

// Enroll adds the requester to a course as a student. Enrolling twice
// returns the existing enrollment unchanged.
func (s *CourseService) Enroll(ctx context.Context, requester *userdomain.User, courseID int64) (*domain.Enrollment, error) {
	if err := access.Authenticated(requester); err != nil {
		return nil, err
	}

	if _, err := s.repo.Find(ctx, courseID); err != nil {
		return nil, err
	}

	e := &domain.Enrollment{UserID: requester.ID, CourseID: courseID, Role: domain.RoleStudent}
	err := s.repo.Enroll(ctx, e)
	if errors.Is(err, apperrors.ErrConflict) {
		return s.repo.FindEnrollment(ctx, requester.ID, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}

	s.logger.Info("Enrolled user", zap.Int64("course_id", courseID), zap.Int64("user_id", requester.ID))
	return e, nil
}
