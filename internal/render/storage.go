package render

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("artifact not found")

type ObjectMeta struct {
	Key         string
	Size        int
	ContentType string
	UpdatedAt   time.Time
}

// ArtifactStore keeps printed documents by key.
type ArtifactStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, ObjectMeta, error)
	Head(ctx context.Context, key string) (ObjectMeta, error)
}

// InMemoryStorage holds at most limit artifacts and evicts the least recently
// written one when full. A limit of zero or less means unbounded.
type InMemoryStorage struct {
	mu    sync.RWMutex
	limit int
	data  map[string][]byte
	meta  map[string]ObjectMeta
	now   func() time.Time

	// written orders entries by put sequence; UpdatedAt can tie.
	written map[string]uint64
	seq     uint64
}

func NewInMemoryStorage(limit int) *InMemoryStorage {
	return &InMemoryStorage{
		limit:   limit,
		data:    map[string][]byte{},
		meta:    map[string]ObjectMeta{},
		written: map[string]uint64{},
		now:     time.Now,
	}
}

func (s *InMemoryStorage) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[key]; !exists && s.limit > 0 && len(s.data) >= s.limit {
		s.evictOldestLocked()
	}
	s.data[key] = body
	s.meta[key] = ObjectMeta{
		Key:         key,
		Size:        len(body),
		ContentType: contentType,
		UpdatedAt:   s.now().UTC(),
	}
	s.seq++
	s.written[key] = s.seq
	return nil
}

func (s *InMemoryStorage) GetObject(_ context.Context, key string) ([]byte, ObjectMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.data[key]
	if !ok {
		return nil, ObjectMeta{}, ErrNotFound
	}
	return body, s.meta[key], nil
}

func (s *InMemoryStorage) Head(_ context.Context, key string) (ObjectMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.meta[key]
	if !ok {
		return ObjectMeta{}, ErrNotFound
	}
	return meta, nil
}

func (s *InMemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *InMemoryStorage) evictOldestLocked() {
	var oldest string
	var oldestSeq uint64
	found := false
	for key, seq := range s.written {
		if !found || seq < oldestSeq {
			oldest, oldestSeq, found = key, seq, true
		}
	}
	if found {
		delete(s.data, oldest)
		delete(s.meta, oldest)
		delete(s.written, oldest)
	}
}
