package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/snapcourse/snapcourse-backend/internal/access"
	"github.com/snapcourse/snapcourse-backend/internal/projects/domain"
	userdomain "github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

// Repository provides persistence operations for projects.
// Find returns apperrors.ErrNotFound for missing or deleted projects.
type Repository interface {
	Find(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo   Repository
	logger *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		repo:   repo,
		logger: logger,
	}
}

// ListQuery narrows a project listing.
type ListQuery struct {
	UserID *int64
	Title  string
}

// List returns the projects visible to requester in creation order.
func (s *ProjectService) List(ctx context.Context, requester *userdomain.User, q ListQuery) ([]domain.Project, error) {
	f := access.ProjectListScope(requester, q.UserID)
	f.Title = q.Title
	return s.repo.List(ctx, f)
}

// Show returns a project by id
func (s *ProjectService) Show(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.Find(ctx, id)
}

// Create validates and stores a new project. A signed-in requester becomes its owner.
func (s *ProjectService) Create(ctx context.Context, requester *userdomain.User, attrs domain.Attributes) (*domain.Project, error) {
	p := &domain.Project{}
	attrs.Apply(p)
	if requester != nil {
		owner := requester.ID
		p.Owner = &owner
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("Created project", zap.Int64("project_id", p.ID), zap.Int64p("owner", p.Owner))
	return p, nil
}

// Update applies attrs to a project the requester owns.
// Checks run in order: authentication, existence, ownership, validation.
func (s *ProjectService) Update(ctx context.Context, requester *userdomain.User, id int64, attrs domain.Attributes) (*domain.Project, error) {
	p, err := s.authorize(ctx, requester, id, access.VerbUpdate)
	if err != nil {
		return nil, err
	}

	attrs.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info("Updated project", zap.Int64("project_id", p.ID), zap.Int64("user_id", requester.ID))
	return p, nil
}

// Delete removes a project the requester owns, with the same check order as Update.
func (s *ProjectService) Delete(ctx context.Context, requester *userdomain.User, id int64) error {
	p, err := s.authorize(ctx, requester, id, access.VerbDelete)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info("Deleted project", zap.Int64("project_id", p.ID), zap.Int64("user_id", requester.ID))
	return nil
}

// authorize checks authentication before loading the project so an anonymous
// caller never learns whether id exists.
func (s *ProjectService) authorize(ctx context.Context, requester *userdomain.User, id int64, verb string) (*domain.Project, error) {
	if err := access.Authenticated(requester); err != nil {
		return nil, err
	}

	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.AuthorizeProjectMutation(requester, p, verb); err != nil {
		s.logger.Warn("Project access denied",
			zap.Int64("project_id", id),
			zap.Int64("user_id", requester.ID),
			zap.String("verb", verb))
		return nil, err
	}
	return p, nil
}
