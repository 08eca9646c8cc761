package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/projects/domain"
)

// ProjectRepo is the projects.Repository view of the store. Soft-deleted rows are invisible to it.
type ProjectRepo struct{ *Store }

func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s} }

const projectColumns = `id, title, note, is_public, owner, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Note, &p.IsPublic, &p.Owner, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Find(ctx context.Context, id int64) (*domain.Project, error) {
	q := `select ` + projectColumns + ` from projects where id = $1 and deleted_at is null;`
	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (title, note, is_public, owner)
values ($1, $2, $3, $4)
returning id, created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q, p.Title, p.Note, p.IsPublic, p.Owner).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapErr(err)
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	const q = `
update projects
set title = $2, note = $3, is_public = $4, updated_at = now()
where id = $1 and deleted_at is null
returning updated_at;
`
	if err := r.db.QueryRow(ctx, q, p.ID, p.Title, p.Note, p.IsPublic).Scan(&p.UpdatedAt); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	const q = `update projects set deleted_at = now() where id = $1 and deleted_at is null;`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	where := []string{"deleted_at is null"}
	var args []any
	if f.OwnerID != nil {
		args = append(args, *f.OwnerID)
		where = append(where, fmt.Sprintf("owner = $%d", len(args)))
	}
	if f.PublicOnly {
		where = append(where, "is_public")
	}
	if f.Title != "" {
		args = append(args, f.Title)
		where = append(where, fmt.Sprintf("title = $%d", len(args)))
	}

	q := `select ` + projectColumns + ` from projects where ` + strings.Join(where, " and ") + ` order by id asc;`
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
