package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory GroupStore implementation.
type MemoryStore struct {
	mu         sync.RWMutex
	byConsumer map[string][]GroupRecord
	nextID     int64
}

// NewMemoryStore creates an empty in-memory group store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byConsumer: make(map[string][]GroupRecord),
	}
}

// Assign adds a consumer-to-group assignment. Assigning the same group
// twice is a no-op.
func (s *MemoryStore) Assign(consumerID, group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.byConsumer[consumerID] {
		if r.Group == group {
			return
		}
	}

	s.nextID++
	s.byConsumer[consumerID] = append(s.byConsumer[consumerID], GroupRecord{
		ID:         s.nextID,
		ConsumerID: consumerID,
		Group:      group,
		CreatedAt:  time.Now().UTC(),
	})
}

// Unassign removes a consumer-to-group assignment. Idempotent.
func (s *MemoryStore) Unassign(consumerID, group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.byConsumer[consumerID]
	for i, r := range records {
		if r.Group == group {
			s.byConsumer[consumerID] = append(records[:i:i], records[i+1:]...)
			return
		}
	}
}

// FindGroupAssignments returns a copy of the consumer's assignments in
// insertion order. Returns an empty slice for unknown consumers.
func (s *MemoryStore) FindGroupAssignments(_ context.Context, consumerID string) ([]GroupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.byConsumer[consumerID]
	out := make([]GroupRecord, len(records))
	copy(out, records)
	return out, nil
}

// CacheKey derives the lookup cache key for the consumer.
func (s *MemoryStore) CacheKey(consumerID string) string {
	return GroupsCacheKey(consumerID)
}

// Ensure MemoryStore implements GroupStore
var _ GroupStore = (*MemoryStore)(nil)
