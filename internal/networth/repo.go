package networth

import "context"

// Repo defines persistence operations for net-worth snapshots.
type Repo interface {
	Create(ctx context.Context, s Snapshot) error
	// ListByDateDesc returns every snapshot, newest date first.
	ListByDateDesc(ctx context.Context) ([]Snapshot, error)
	// Latest returns the snapshot with the newest date or ErrNotFound.
	Latest(ctx context.Context) (Snapshot, error)
}
