package postgres

import (
	"context"

	"github.com/snapcourse/snapcourse-backend/internal/users/domain"
)

// UserRepo is the users.Repository view of the store.
type UserRepo struct{ *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const q = `
insert into users (email, password_hash)
values ($1, $2)
returning id, created_at;
`
	if err := r.db.QueryRow(ctx, q, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `select id, email, password_hash, created_at from users where id = $1;`
	var u domain.User
	if err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `select id, email, password_hash, created_at from users where email = $1;`
	var u domain.User
	if err := r.db.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
