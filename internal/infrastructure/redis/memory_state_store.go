package redis

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
)

// MemoryStateStore alternativa en proceso cuando REDIS_ADDR está vacío (una sola réplica).
type MemoryStateStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{expires: make(map[string]time.Time), now: time.Now}
}

var _ auth.StateStore = (*MemoryStateStore)(nil)

func (s *MemoryStateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	// Purga perezosa de vencidos.
	for k, exp := range s.expires {
		if now.After(exp) {
			delete(s.expires, k)
		}
	}
	s.expires[state] = now.Add(ttl)
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[state]
	if !ok {
		return false, nil
	}
	delete(s.expires, state)
	return !s.now().After(exp), nil
}
