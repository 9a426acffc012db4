package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `
SELECT id, name, type, size, s3_key, analysis_status, analysis_result, created_at, updated_at
FROM documents`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var status string
	var result []byte
	if err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Type,
		&doc.Size,
		&doc.ObjectKey,
		&status,
		&result,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Status = Status(status)
	if len(result) > 0 {
		doc.Result = json.RawMessage(result)
	}
	return doc, nil
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    name,
    type,
    size,
    s3_key,
    analysis_status,
    analysis_result,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8)`

	status := doc.Status
	if status == "" {
		status = StatusPending
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Name,
		doc.Type,
		doc.Size,
		doc.ObjectKey,
		string(status),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// validID reports whether id can match the UUID primary key. Anything else
// would fail in Postgres with invalid_text_representation instead of no rows.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if !validID(id) {
		return Document{}, ErrNotFound
	}
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, selectColumns+`
WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// GetByObjectKey fetches the document that owns the given object key.
func (r *PGRepo) GetByObjectKey(ctx context.Context, key string) (Document, error) {
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, selectColumns+`
WHERE s3_key = $1`, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// List lists documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Document, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+`
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes the document row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FinishAnalysis writes the terminal status and result in one conditional update.
func (r *PGRepo) FinishAnalysis(ctx context.Context, id string, status Status, result json.RawMessage) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: status %q is not terminal", ErrInvalidInput, status)
	}
	if !validID(id) {
		return ErrNotFound
	}
	const query = `
UPDATE documents
SET analysis_status = $2,
    analysis_result = $3,
    updated_at = now()
WHERE id = $1 AND analysis_status = 'pending'`

	var payload any
	if len(result) > 0 {
		payload = string(result)
	}
	res, err := r.DB.ExecContext(ctx, query, id, string(status), payload)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAnalysisFinal
	}
	return nil
}
