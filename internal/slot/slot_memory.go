package slot

import (
	"context"
	"sync"
)

type MemSlot struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemSlot() *MemSlot {
	return &MemSlot{m: map[string][]byte{}}
}

func (s *MemSlot) Ping(ctx context.Context) error { return nil }

func (s *MemSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemSlot) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}
