// Package storage provides the in-memory holder for generation state.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/logger"
)

// Compile-time interface check.
var _ domain.StateStore = (*MemoryStore)(nil)

// MemoryStore keeps the current GenerationState of one session and fans
// every change out to subscribers. Safe for concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	state domain.GenerationState
	subs  []chan domain.GenerationState
	log   *logger.Logger
}

// NewMemoryStore creates a store holding the initial state.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		state: domain.InitialState(),
		log:   log,
	}
}

// Load returns the current state.
func (s *MemoryStore) Load(ctx context.Context) (domain.GenerationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

// Save replaces the current state unconditionally.
func (s *MemoryStore) Save(ctx context.Context, state domain.GenerationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(state)
	return nil
}

// CompareAndSave replaces the current state only if it was produced by the
// same generation token as state.
func (s *MemoryStore) CompareAndSave(ctx context.Context, state domain.GenerationState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Token != state.Token {
		s.log.Debug("rejecting state for token %d, current token is %d", state.Token, s.state.Token)
		return false, nil
	}
	s.replace(state)
	return true, nil
}

// Subscribe returns a channel that receives the latest state after every
// change. Slow readers only ever see the most recent state; intermediate
// ones are dropped. The channel is closed when ctx is done.
func (s *MemoryStore) Subscribe(ctx context.Context) <-chan domain.GenerationState {
	ch := make(chan domain.GenerationState, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, c := range s.subs {
			if c == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

// replace must be called with s.mu held.
func (s *MemoryStore) replace(state domain.GenerationState) {
	s.log.Debug("state token=%d loading=%t recipes=%d error=%t",
		state.Token, state.Loading, len(state.Recipes), state.HasError())
	s.state = state

	for _, ch := range s.subs {
		// Drain the stale value so the send never blocks.
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
