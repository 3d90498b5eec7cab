// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"travel-assistant/internal/models"
)

// memoryStore keeps sessions for the lifetime of the process. Each key
// has its own lock so a slow mutation of one conversation never blocks
// another.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
}

type memoryEntry struct {
	mu   sync.Mutex
	data *Data
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*memoryEntry),
	}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.RLock()
	entry, exists := s.sessions[id]
	s.mu.RUnlock()
	if !exists {
		return nil, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyData(entry.data), nil
}

func (s *memoryStore) Mutate(ctx context.Context, id string, fn func(*Data) error) (*Data, error) {
	s.mu.Lock()
	entry, exists := s.sessions[id]
	if !exists {
		now := time.Now()
		entry = &memoryEntry{data: &Data{ID: id, CreatedAt: now, UpdatedAt: now}}
		s.sessions[id] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := fn(entry.data); err != nil {
		return nil, err
	}
	entry.data.UpdatedAt = time.Now()

	return copyData(entry.data), nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	return nil
}

// copyData returns a snapshot detached from the store's copy so
// callers never alias the locked state.
func copyData(d *Data) *Data {
	snapshot := *d
	snapshot.History = append([]models.ChatTurn(nil), d.History...)
	return &snapshot
}
