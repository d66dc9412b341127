package cache

import (
	"sync"

	"relaypager/internal/domain/entity"
)

// Store owns the cached collection of one paginated view.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	policy Policy
	data   *entity.Collection
}

// NewStore creates an empty store governed by policy.
// Missing merge or read functions default to Replace and Identity.
func NewStore(policy Policy) *Store {
	if policy.Merge == nil {
		policy.Merge = Replace
	}
	if policy.Read == nil {
		policy.Read = Identity
	}
	return &Store{policy: policy, data: entity.NewCollection()}
}

// Policy returns the store's policy.
func (s *Store) Policy() Policy {
	return s.policy
}

// Apply merges incoming into the cache and returns the new visible collection.
func (s *Store) Apply(incoming *entity.Collection) *entity.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = s.policy.Merge(s.data, incoming)
	return s.policy.Read(s.data)
}

// Reset empties the cache. Used when the query identity changes.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = entity.NewCollection()
}

// Remove drops the node with the given ID and reports whether it was cached.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.data.Len()
	s.data = s.data.Without(id)
	return s.data.Len() != before
}

// Snapshot returns a copy of the cached collection as stored.
func (s *Store) Snapshot() *entity.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// View returns a copy of the visible collection.
func (s *Store) View() *entity.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy.Read(s.data).Clone()
}

// Len returns the number of cached edges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}
