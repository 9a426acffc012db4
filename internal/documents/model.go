package documents

import (
	"encoding/json"
	"time"
)

// Status is the analysis lifecycle of a document. It only moves forward:
// pending -> completed or pending -> failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s.IsTerminal()
}

// Document is an uploaded financial document and the outcome of its analysis.
type Document struct {
	ID        string
	Name      string
	Type      string
	Size      int64
	ObjectKey string
	Status    Status
	// Result is set only once Status leaves pending.
	Result    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
