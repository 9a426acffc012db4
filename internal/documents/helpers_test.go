package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"wealth-backend/internal/queue"
	"wealth-backend/internal/shared/storage/object"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
	deletes []string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, key)
	if s.putErr != nil {
		return 0, s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = data
	return int64(len(data)), nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	delete(s.objects, key)
	return nil
}

type signingStore struct {
	*fakeStore
	err error
}

func (s signingStore) SignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://bucket.example.com/" + key + "?X-Amz-Expires=" + expires.String(), nil
}

type fakeQueue struct {
	mu   sync.Mutex
	sent []queue.Message
	err  error
}

func (q *fakeQueue) Send(ctx context.Context, msg queue.Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, msg)
	return nil
}

type failingCreateRepo struct {
	*MemoryRepo
}

var errInsert = errors.New("insert failed")

func (failingCreateRepo) Create(ctx context.Context, doc Document) error {
	return errInsert
}
