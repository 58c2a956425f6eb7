// Package inmem is the default conversation-context store: a bounded
// in-process map from session id to the last generated answer. Capacity and
// TTL keep the store from growing with the lifetime of the process.
package inmem

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Store struct {
	lru *expirable.LRU[string, string]
}

func New(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{lru: expirable.NewLRU[string, string](capacity, nil, ttl)}
}

func (s *Store) LastAnswer(_ context.Context, sessionID string) (string, bool, error) {
	answer, ok := s.lru.Get(sessionID)
	return answer, ok, nil
}

func (s *Store) RememberAnswer(_ context.Context, sessionID, answer string) error {
	s.lru.Add(sessionID, answer)
	return nil
}
