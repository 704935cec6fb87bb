package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/veritas/internal/model"
)

// MemoryStore keeps verified claims in process memory. With a zero
// retention rows never expire, matching the persistent store.
type MemoryStore struct {
	cache *gocache.Cache
	mu    sync.Mutex
	next  int64
	now   func() time.Time
}

// NewMemoryStore creates an in-memory store; retention <= 0 keeps rows forever
func NewMemoryStore(retention time.Duration) *MemoryStore {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if retention > 0 {
		expiration = retention
		cleanup = retention / 2
	}
	return &MemoryStore{
		cache: gocache.New(expiration, cleanup),
		now:   time.Now,
	}
}

// Append stores a copy of claim under a fresh id
func (s *MemoryStore) Append(_ context.Context, claim model.CachedClaim) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	claim.ID = s.next
	if claim.RetrievedAt.IsZero() {
		claim.RetrievedAt = s.now().UTC()
	}
	s.cache.Set(fmt.Sprintf("claim:%020d", claim.ID), claim, gocache.DefaultExpiration)
	return claim.ID, nil
}

// Recent returns up to limit unexpired rows, newest first
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]model.CachedClaim, error) {
	items := s.cache.Items()
	rows := make([]model.CachedClaim, 0, len(items))
	for _, item := range items {
		if claim, ok := item.Object.(model.CachedClaim); ok {
			rows = append(rows, claim)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].RetrievedAt.Equal(rows[j].RetrievedAt) {
			return rows[i].RetrievedAt.After(rows[j].RetrievedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Len returns the number of live rows
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
