package storage

import (
	"context"
	"sync"

	"menu-svc/internal/domain"
)

// MemoryRepository keeps items in an ordered slice guarded by a RWMutex.
// Insertion order is preserved, records are never physically removed, and
// callers always get copies so a reader can never observe a torn write.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Item
	index map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: map[string]int{}}
}

func (r *MemoryRepository) Insert(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.index[item.ID] = len(r.items)
	r.items = append(r.items, *item)
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.items[pos] = *item
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item := r.items[pos]
	return &item, nil
}

func (r *MemoryRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := domain.NormalizedName(name)
	for _, item := range r.items {
		if !item.IsDeleted && domain.NormalizedName(item.Name) == key {
			found := item
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Item, len(r.items))
	copy(items, r.items)
	return items, nil
}
