package repository

import (
	"context"
	"sync"

	"deal-engine/domain"
)

// ComparisonRepositoryMemory is an in-memory ComparisonRepository.
type ComparisonRepositoryMemory struct {
	mu   sync.Mutex
	sets map[string]domain.ComparisonSet
}

func NewComparisonRepositoryMemory() *ComparisonRepositoryMemory {
	return &ComparisonRepositoryMemory{
		sets: make(map[string]domain.ComparisonSet),
	}
}

func (r *ComparisonRepositoryMemory) Get(_ context.Context, id string) (domain.ComparisonSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(id), nil
}

// Update applies fn under the repository lock.
func (r *ComparisonRepositoryMemory) Update(_ context.Context, id string, fn UpdateFunc) (domain.ComparisonSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.load(id))
	if err != nil {
		return domain.ComparisonSet{}, err
	}
	next.ID = id
	r.sets[id] = cloneSet(next)
	return cloneSet(next), nil
}

func (r *ComparisonRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, id)
	return nil
}

func (r *ComparisonRepositoryMemory) load(id string) domain.ComparisonSet {
	set, ok := r.sets[id]
	if !ok {
		return domain.ComparisonSet{ID: id, Entries: []domain.PropertyComparison{}}
	}
	return cloneSet(set)
}

func cloneSet(set domain.ComparisonSet) domain.ComparisonSet {
	entries := make([]domain.PropertyComparison, len(set.Entries))
	copy(entries, set.Entries)
	return domain.ComparisonSet{ID: set.ID, Entries: entries}
}
