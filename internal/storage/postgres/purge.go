package postgres

import (
	"context"
	"time"
)

// PurgeDeleted hard-deletes projects and courses soft-deleted before cutoff.
// Enrollments of purged courses cascade.
func (s *Store) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	for _, q := range []string{
		`delete from projects where deleted_at is not null and deleted_at < $1;`,
		`delete from courses where deleted_at is not null and deleted_at < $1;`,
	} {
		tag, err := tx.Exec(ctx, q, cutoff)
		if err != nil {
			return 0, err
		}
		total += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return total, nil
}
