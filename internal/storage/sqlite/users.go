package sqlite

import (
	"context"

	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

// UserRepo is the users.Repository view of the store.
type UserRepo struct{ *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		u.Email, u.PasswordHash, toMillis(now))
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.CreatedAt = fromMillis(toMillis(now))
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (r *UserRepo) findOne(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	var created int64
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &created); err != nil {
		return nil, mapErr(err)
	}
	u.CreatedAt = fromMillis(created)
	return &u, nil
}
