package store

import (
	"context"
	"sync"

	"signin/internal/domain"
)

// MemoryTokenStore keeps values in process memory only.
type MemoryTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{values: make(map[string]string)}
}

func (s *MemoryTokenStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryTokenStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryTokenStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

var _ domain.CredentialStore = (*MemoryTokenStore)(nil)
