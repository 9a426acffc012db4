package documents

import (
	"context"
	"encoding/json"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	GetByObjectKey(ctx context.Context, key string) (Document, error)
	// List returns every document, newest first.
	List(ctx context.Context) ([]Document, error)
	Delete(ctx context.Context, id string) error
	// FinishAnalysis moves a pending document to a terminal status with its result.
	// It returns ErrAnalysisFinal when the document is no longer pending.
	FinishAnalysis(ctx context.Context, id string, status Status, result json.RawMessage) error
}
