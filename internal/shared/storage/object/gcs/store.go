package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"wealth-backend/internal/shared/storage/object"
)

// Store implements ObjectStore on a Google Cloud Storage bucket.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// New builds a GCS-backed store. A non-empty endpoint targets an emulator
// (fake-gcs-server) and disables authentication.
func New(ctx context.Context, bucket, prefix, endpoint string) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	var opts []option.ClientOption
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &Store{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *Store) handle(key string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(object.JoinKey(s.prefix, key))
}

// Put streams r into a new object. Keys are random per upload, so the write
// is conditioned on the object not existing yet.
//
// A failed read from r cancels the upload so no truncated object is finalized.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := s.handle(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}

	n, err := io.Copy(writer, r)
	if err != nil {
		cancel()
		_ = writer.Close()
		return 0, fmt.Errorf("gcs write bucket=%s key=%s: %w", s.bucket, key, err)
	}
	if err := writer.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return 0, fmt.Errorf("gcs write bucket=%s key=%s: object already exists", s.bucket, key)
		}
		return 0, fmt.Errorf("gcs finalize bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return n, nil
}

// Open returns a reader for the object.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.handle(key).NewReader(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("gcs read bucket=%s key=%s: %w", s.bucket, key, object.ErrNotFound)
		}
		return nil, fmt.Errorf("gcs read bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return rc, nil
}

// Delete removes the object; a missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.handle(key).Delete(ctx); err != nil && !isNotFound(err) {
		return fmt.Errorf("gcs delete bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return nil
}

// SignedURL returns a V4 signed GET URL. Credentials are detected from the
// environment (service account key or IAM signBlob).
func (s *Store) SignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	_ = ctx
	url, err := s.client.Bucket(s.bucket).SignedURL(object.JoinKey(s.prefix, key), &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("gcs sign key=%s: %w", key, err)
	}
	return url, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func isNotFound(err error) bool {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

var (
	_ object.ObjectStore = (*Store)(nil)
	_ object.URLSigner   = (*Store)(nil)
)
