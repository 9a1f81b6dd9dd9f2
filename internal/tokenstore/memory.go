package tokenstore

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/oauth2"
)

// MemoryStore keeps credentials in process memory. This is the demo default;
// tokens are lost on restart and never shared between instances.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*oauth2.Token)}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[userID], nil
}

func (s *MemoryStore) Set(ctx context.Context, userID string, token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *MemoryStore) Identities(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.tokens))
	for id := range s.tokens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
