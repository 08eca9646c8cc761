package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/snapcourse/snapcourse-backend/internal/apperrors"
	"github.com/snapcourse/snapcourse-backend/internal/projects/domain"
)

// ProjectRepo is the projects.Repository view of the store. Soft-deleted rows are invisible to it.
type ProjectRepo struct{ *Store }

func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s} }

const projectColumns = `id, title, note, is_public, owner, created_at, updated_at`

func scanProject(row scanner) (*domain.Project, error) {
	var (
		p                domain.Project
		owner            sql.NullInt64
		created, updated int64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Note, &p.IsPublic, &owner, &created, &updated); err != nil {
		return nil, err
	}
	if owner.Valid {
		id := owner.Int64
		p.Owner = &id
	}
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

func (r *ProjectRepo) Find(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND deleted_at IS NULL`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	now := toMillis(r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (title, note, is_public, owner, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Note, p.IsPublic, p.Owner, now, now)
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = fromMillis(now)
	p.UpdatedAt = fromMillis(now)
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	now := toMillis(r.now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, note = ?, is_public = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		p.Title, p.Note, p.IsPublic, now, p.ID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	p.UpdatedAt = fromMillis(now)
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, toMillis(r.now()), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	where := []string{"deleted_at IS NULL"}
	var args []any
	if f.OwnerID != nil {
		where = append(where, "owner = ?")
		args = append(args, *f.OwnerID)
	}
	if f.PublicOnly {
		where = append(where, "is_public = 1")
	}
	if f.Title != "" {
		where = append(where, "title = ?")
		args = append(args, f.Title)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE `+strings.Join(where, " AND ")+` ORDER BY id ASC`, args...)
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
