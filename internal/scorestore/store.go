package scorestore

import (
	"context"
	"sync"
)

// Key is the versioned slot the serialized score record lives under.
// Changing the record schema means changing the key so an old layout is
// never misread as the new one.
const Key = "quiz_scores_v2"

// Store is the persistence gateway for the score record: one whole-record
// get/put/delete on the versioned key. Durable across restarts on the same
// device; cleared entirely by an explicit reset.
type Store interface {
	Get(ctx context.Context) (map[string]int, error)
	Put(ctx context.Context, scores map[string]int) error
	Delete(ctx context.Context) error
}

type memoryStore struct {
	mu     sync.RWMutex
	scores map[string]int
}

// NewInMemoryStore returns a volatile Store. Used by tests and as the
// fallback when no durable backend is available.
func NewInMemoryStore() Store {
	return &memoryStore{scores: map[string]int{}}
}

func (m *memoryStore) Get(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.scores))
	for k, v := range m.scores {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) Put(ctx context.Context, scores map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make(map[string]int, len(scores))
	for k, v := range scores {
		next[k] = v
	}
	m.scores = next
	return nil
}

func (m *memoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = map[string]int{}
	return nil
}
