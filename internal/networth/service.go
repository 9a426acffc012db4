package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wealth-backend/internal/shared/metrics"
	"wealth-backend/internal/shared/telemetry"
)

// Service contains business logic for net-worth snapshots.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service with a UTC clock.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create records a snapshot entered by the user.
func (s *Service) Create(ctx context.Context, value decimal.Decimal, date time.Time) (Snapshot, error) {
	if date.IsZero() {
		return Snapshot{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	now := s.now()
	snap := Snapshot{
		ID:        uuid.NewString(),
		Value:     value.Round(2),
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}
	return snap, nil
}

// Record stores a snapshot derived from a document analysis.
func (s *Service) Record(ctx context.Context, value decimal.Decimal, date time.Time, documentID string) (Snapshot, error) {
	snap, err := s.Create(ctx, value, date)
	if err != nil {
		return Snapshot{}, err
	}
	metrics.IncSnapshotsRecorded()
	telemetry.Info("networth.snapshot.recorded", map[string]any{
		"snapshot_id": snap.ID,
		"document_id": documentID,
		"request_id":  telemetry.RequestIDFromContext(ctx),
		"date":        snap.Date.Format("2006-01-02"),
	})
	return snap, nil
}

// History returns all snapshots ordered by date descending.
func (s *Service) History(ctx context.Context) ([]Snapshot, error) {
	return s.Repo.ListByDateDesc(ctx)
}

// Latest returns the most recent snapshot by date.
func (s *Service) Latest(ctx context.Context) (Snapshot, error) {
	return s.Repo.Latest(ctx)
}
