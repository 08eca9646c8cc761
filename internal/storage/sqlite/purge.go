package sqlite

import (
	"context"
	"fmt"
	"time"
)

// PurgeDeleted hard-deletes projects and courses soft-deleted before cutoff.
// Enrollments of purged courses cascade.
func (s *Store) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for _, q := range []string{
		`DELETE FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < ?`,
		`DELETE FROM courses WHERE deleted_at IS NOT NULL AND deleted_at < ?`,
	} {
		res, err := tx.ExecContext(ctx, q, toMillis(cutoff))
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return total, nil
}
