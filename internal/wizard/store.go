package wizard

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Store keeps drafts between requests. Drafts never reach durable SQL
// storage; the only externalization is export.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Save(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Update applies fn to the stored draft and saves the result as one
	// step. Nothing is saved when fn fails.
	Update(ctx context.Context, id uuid.UUID, fn func(d *Draft) error) (*Draft, error)
}

// MemoryStore is a process-local Store. Values are stored encoded so callers
// never share a *Draft.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: map[uuid.UUID][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Draft, error) {
	s.mu.RLock()
	b, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDraftNotFound
	}
	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MemoryStore) Save(_ context.Context, d *Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[d.ID] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fn func(d *Draft) error) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	if err := fn(&d); err != nil {
		return nil, err
	}
	nb, err := json.Marshal(&d)
	if err != nil {
		return nil, err
	}
	s.drafts[id] = nb
	return &d, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}
