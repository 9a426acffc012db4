package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for storing, reading and removing binary
// objects. Keys are always chosen by the caller.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// URLSigner is implemented by stores that can hand out time-limited direct
// download links.
type URLSigner interface {
	SignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Get reads the whole object stored under key.
func Get(ctx context.Context, store ObjectStore, key string) ([]byte, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read object key=%s: %w", key, err)
	}
	return data, nil
}

// JoinKey prefixes key with a bucket-level namespace, tolerating stray slashes.
func JoinKey(prefix, key string) string {
	cleanPrefix := strings.Trim(strings.TrimSpace(prefix), "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}
