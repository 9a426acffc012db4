package networth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type createRequest struct {
	Value *decimal.Decimal `json:"value"`
	Date  string           `json:"date"`
}

// SnapshotResponse is the outward-facing representation of a snapshot.
type SnapshotResponse struct {
	ID        string      `json:"id"`
	Value     json.Number `json:"value"`
	Date      time.Time   `json:"date"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toResponse(s Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:        s.ID,
		Value:     json.Number(s.Value.String()),
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toResponses(list []Snapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toResponse(s))
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC3339, a naive ISO timestamp (read as UTC) or a bare date.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not an ISO date", ErrInvalidInput, trimmed)
}
