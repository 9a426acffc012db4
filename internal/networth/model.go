package networth

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the user's net worth at a point in time.
type Snapshot struct {
	ID        string
	Value     decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
