package repository

import (
	"context"
	"sync"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// MemoryDraftsRepo keeps drafts in process memory. It backs the service when
// no database is reachable and in tests. Stored values are copies.
type MemoryDraftsRepo struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]domain.Draft
}

func NewMemoryDraftsRepo() *MemoryDraftsRepo {
	return &MemoryDraftsRepo{drafts: map[uuid.UUID]domain.Draft{}}
}

func (r *MemoryDraftsRepo) Save(_ context.Context, d *domain.Draft) error {
	cp := *d
	cp.Resume = d.Resume.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.drafts[d.ID]; ok {
		cp.CreatedAt = prev.CreatedAt
	}
	r.drafts[d.ID] = cp
	return nil
}

func (r *MemoryDraftsRepo) Get(_ context.Context, id uuid.UUID) (*domain.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	d.Resume = d.Resume.Clone()
	return &d, nil
}

func (r *MemoryDraftsRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(r.drafts, id)
	return nil
}
