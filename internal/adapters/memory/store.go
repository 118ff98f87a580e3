// Package memory provides an in-process TokenStore, mainly for tests and
// single-binary deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store implements ports.TokenStore with a mutex-guarded map.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{tokens: make(map[string]string)}
}

// Save persists the token for an instance ID.
func (s *Store) Save(ctx context.Context, instanceID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[instanceID] = token
	return nil
}

// Load retrieves the token for an instance ID.
func (s *Store) Load(ctx context.Context, instanceID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[instanceID]
	if !ok {
		return "", domain.ErrInstanceNotFound
	}
	return token, nil
}

// Delete removes the token for an instance ID.
func (s *Store) Delete(ctx context.Context, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, instanceID)
	return nil
}

// List returns the known instance IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.tokens))
	for id := range s.tokens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
