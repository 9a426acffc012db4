package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"wealth-backend/internal/queue"
	"wealth-backend/internal/shared/metrics"
	"wealth-backend/internal/shared/storage/object"
	"wealth-backend/internal/shared/telemetry"
	"wealth-backend/internal/shared/util"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	// Queue may be nil; uploads then stay pending until re-analyzed.
	Queue queue.Client
	URLs  URLBuilder
	// InlineContentMax is the largest upload carried inside the queue message.
	InlineContentMax int
	Now              func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload stores the bytes, records a pending document and enqueues its analysis.
// Enqueue failures are logged and counted but never fail the upload.
func (s *Service) Upload(ctx context.Context, name, contentType string, content []byte) (Document, error) {
	displayName, err := util.SanitizeFileName(name)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	contentType = strings.TrimSpace(contentType)

	key := uuid.NewString() + strings.ToLower(filepath.Ext(displayName))
	if _, err := s.Store.Put(ctx, key, contentType, bytes.NewReader(content)); err != nil {
		return Document{}, fmt.Errorf("store document: %w", err)
	}

	now := s.now()
	doc := Document{
		ID:        uuid.NewString(),
		Name:      displayName,
		Type:      contentType,
		Size:      int64(len(content)),
		ObjectKey: key,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		// No row references the blob, so remove it.
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			telemetry.Error("documents.upload.cleanup_failed", map[string]any{
				"object_key": key,
				"request_id": telemetry.RequestIDFromContext(ctx),
				"error":      delErr.Error(),
			})
		}
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	metrics.IncDocumentsUploaded()
	telemetry.Info("documents.uploaded", map[string]any{
		"document_id": doc.ID,
		"object_key":  key,
		"size":        doc.Size,
		"sha256":      util.SHA256Hex(content),
		"request_id":  telemetry.RequestIDFromContext(ctx),
	})

	s.enqueue(ctx, doc, content)
	return doc, nil
}

func (s *Service) enqueue(ctx context.Context, doc Document, content []byte) {
	fields := map[string]any{
		"document_id": doc.ID,
		"object_key":  doc.ObjectKey,
		"request_id":  telemetry.RequestIDFromContext(ctx),
	}
	if s.Queue == nil {
		metrics.IncDocumentsEnqueueFailed()
		fields["error"] = "queue not configured"
		telemetry.Warn("documents.enqueue.failed", fields)
		return
	}

	msg := queue.NewMessage(doc.ID, doc.ObjectKey, doc.Type, doc.Name, telemetry.RequestIDFromContext(ctx))
	if len(content) <= s.InlineContentMax {
		msg.Content = content
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		metrics.IncDocumentsEnqueueFailed()
		fields["error"] = err.Error()
		telemetry.Warn("documents.enqueue.failed", fields)
		return
	}
	fields["inline"] = msg.Content != nil
	telemetry.Info("documents.enqueued", fields)
}

// Get returns one document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all documents, newest first.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.Repo.List(ctx)
}

// Delete removes the blob and then the row. Unknown ids touch neither store.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, doc.ObjectKey); err != nil && !errors.Is(err, object.ErrNotFound) {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	metrics.IncDocumentsDeleted()
	telemetry.Info("documents.deleted", map[string]any{
		"document_id": doc.ID,
		"object_key":  doc.ObjectKey,
		"request_id":  telemetry.RequestIDFromContext(ctx),
	})
	return nil
}

// Open streams the blob for a known object key together with its document.
func (s *Service) Open(ctx context.Context, key string) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByObjectKey(ctx, key)
	if err != nil {
		return Document{}, nil, err
	}
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Document{}, nil, ErrNotFound
		}
		return Document{}, nil, fmt.Errorf("open object: %w", err)
	}
	return doc, body, nil
}

// AccessURL returns a freshly computed download URL for doc.
func (s *Service) AccessURL(ctx context.Context, doc Document) string {
	return s.URLs.URL(ctx, doc.ObjectKey)
}
