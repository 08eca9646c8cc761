package service

import (
	"context"
	"sync"
	"time"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/projects/domain"
)

// mockProjectRepo is an in-memory Repository keeping insertion order.
type mockProjectRepo struct {
	mu       sync.Mutex
	nextID   int64
	projects []domain.Project
	deleted  map[int64]bool

	updateCalls int
	deleteCalls int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{deleted: map[int64]bool{}}
}

func (r *mockProjectRepo) Find(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.ID == id && !r.deleted[id] {
			p := p
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *mockProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.projects = append(r.projects, *p)
	return nil
}

func (r *mockProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	for i := range r.projects {
		if r.projects[i].ID == p.ID && !r.deleted[p.ID] {
			p.UpdatedAt = time.Now()
			r.projects[i] = *p
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *mockProjectRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	r.deleted[id] = true
	return nil
}

func (r *mockProjectRepo) List(_ context.Context, f domain.ListFilter) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Project, 0)
	for _, p := range r.projects {
		if r.deleted[p.ID] {
			continue
		}
		if f.OwnerID != nil && (p.Owner == nil || *p.Owner != *f.OwnerID) {
			continue
		}
		if f.PublicOnly && !p.IsPublic {
			continue
		}
		if f.Title != "" && p.Title != f.Title {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// seed stores p directly, bypassing validation.
func (r *mockProjectRepo) seed(p domain.Project) domain.Project {
	_ = r.Create(context.Background(), &p)
	return p
}
