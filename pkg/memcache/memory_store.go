// pkg/memcache/memory_store.go
package mem

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process TTL map holding at most maxEntries. Expired
// entries are dropped on read and swept when the map grows past the cap; if
// it is still full, the entries closest to expiry are evicted.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]entry
	maxEntries int
	now        func() time.Time
}

func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, key) // cleanup expired
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.data[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}
	if len(s.data) > s.maxEntries {
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
	for len(s.data) > s.maxEntries {
		s.evictSoonest(key)
	}
	return nil
}

// evictSoonest drops the entry that expires first, never keep.
func (s *MemoryStore) evictSoonest(keep string) {
	var victim string
	var soonest time.Time
	for k, e := range s.data {
		if k == keep {
			continue
		}
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	delete(s.data, victim)
}

// Len reports the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
