package networth

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `SELECT id, value, date, created_at, updated_at FROM net_worth_entries`

// Create inserts a new snapshot.
func (r *PGRepo) Create(ctx context.Context, s Snapshot) error {
	const query = `
INSERT INTO net_worth_entries (id, value, date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Value, s.Date, s.CreatedAt, s.UpdatedAt)
	return err
}

// ListByDateDesc lists snapshots, newest date first.
func (r *PGRepo) ListByDateDesc(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+`
ORDER BY date DESC, created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Snapshot, 0)
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Value, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the snapshot with the newest date.
func (r *PGRepo) Latest(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := r.DB.QueryRowContext(ctx, selectColumns+`
ORDER BY date DESC, created_at DESC, id DESC
LIMIT 1`).Scan(&s.ID, &s.Value, &s.Date, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	return s, nil
}
