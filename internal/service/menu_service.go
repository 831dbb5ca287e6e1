package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"menu-svc/internal/domain"

	"github.com/google/uuid"
)

type CreateItemInput struct {
	Name        string
	Category    domain.Category
	Price       float64
	IsAvailable bool
}

// MenuService owns all item mutations and the listing pipeline. The mutex
// serializes every check-then-write sequence (uniqueness probe + insert,
// deleted-flag read + update) so two concurrent creates with the same name
// cannot both pass the uniqueness check.
type MenuService struct {
	mu        sync.Mutex
	repo      ItemRepository
	cache     MenuCache
	publisher EventPublisher
	qr        QRGenerator
	now       func() time.Time
}

func NewMenuService(repo ItemRepository, cache MenuCache, publisher EventPublisher, qr QRGenerator) *MenuService {
	return &MenuService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		qr:        qr,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MenuService) Create(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	price, err := domain.NormalizePrice(input.Price)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check name uniqueness: %w", err)
	}

	now := s.now()
	item := &domain.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    input.Category,
		Price:       price,
		IsAvailable: input.IsAvailable,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, domain.EventItemCreated, item)
	return item, nil
}

// Update applies a sparse patch. Every provided field is validated before
// anything is written, so a bad price never leaves a half-applied name change.
// Renaming to another live item's name is rejected the same way create is.
func (s *MenuService) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.IsDeleted {
		return nil, domain.ErrItemDeleted
	}

	updated := *item
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		if existing, err := s.repo.FindByName(ctx, name); err == nil {
			if existing.ID != item.ID {
				return nil, domain.ErrDuplicateName
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check name uniqueness: %w", err)
		}
		updated.Name = name
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Price != nil {
		price, err := domain.NormalizePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		updated.Price = price
	}
	if patch.IsAvailable != nil {
		updated.IsAvailable = *patch.IsAvailable
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, domain.EventItemUpdated, &updated)
	return &updated, nil
}

// Delete soft-deletes: the record stays in the store, hidden from listings.
// Deleting an already-deleted item is not an error, it just re-stamps.
func (s *MenuService) Delete(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted := *item
	deleted.IsDeleted = true
	deleted.IsAvailable = false
	deleted.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &deleted); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, domain.EventItemDeleted, &deleted)
	return &deleted, nil
}

func (s *MenuService) Get(ctx context.Context, id string, includeDeleted bool) (*domain.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.IsDeleted && !includeDeleted {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *MenuService) All(ctx context.Context, includeDeleted bool) ([]domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if includeDeleted {
		return items, nil
	}
	live := []domain.Item{}
	for _, item := range items {
		if !item.IsDeleted {
			live = append(live, item)
		}
	}
	return live, nil
}

// Menu runs the listing pipeline: filter, search, sort, paginate, in that
// order. Pagination is always last so total reflects the filtered set.
func (s *MenuService) Menu(ctx context.Context, q domain.MenuQuery) (*domain.Page, error) {
	// The cache key pins the version observed before the store is read;
	// a mutation arriving after this point invalidates that version, so
	// the page computed below can only be filed under the stale key.
	var cacheKey string
	if s.cache != nil {
		page, key, err := s.cache.GetPage(ctx, q)
		if err == nil {
			if page != nil {
				return page, nil
			}
			cacheKey = key
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []domain.Item{}
	for _, item := range items {
		if item.IsDeleted {
			continue
		}
		filtered = append(filtered, item)
	}
	if q.Category != nil {
		filtered = keep(filtered, func(item domain.Item) bool { return item.Category == *q.Category })
	}
	if q.Available != nil {
		filtered = keep(filtered, func(item domain.Item) bool { return item.IsAvailable == *q.Available })
	}
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		filtered = keep(filtered, func(item domain.Item) bool {
			return strings.Contains(domain.NormalizedName(item.Name), needle)
		})
	}

	less := func(a, b domain.Item) bool {
		if q.Sort == domain.SortByPrice {
			return a.Price < b.Price
		}
		return domain.NormalizedName(a.Name) < domain.NormalizedName(b.Name)
	}
	// Swapping the comparator arguments reverses the order while keeping
	// ties in their original relative position.
	sort.SliceStable(filtered, func(i, j int) bool {
		if q.Order == domain.OrderDesc {
			return less(filtered[j], filtered[i])
		}
		return less(filtered[i], filtered[j])
	})

	total := len(filtered)
	start := (q.Page - 1) * q.PageSize
	if start < 0 {
		start = 0
	}
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := &domain.Page{
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
		Items:    filtered[start:end],
	}

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.SetPage(ctx, cacheKey, page); err != nil {
			log.Printf("[menu-svc] cache write failed: %v", err)
		}
	}
	return page, nil
}

func (s *MenuService) ItemQRCode(ctx context.Context, id string) ([]byte, error) {
	item, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(item.ID)
}

func (s *MenuService) afterMutation(ctx context.Context, eventType string, item *domain.Item) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[menu-svc] cache invalidation failed: %v", err)
		}
	}
	if s.publisher != nil {
		_ = s.publisher.PublishItemEvent(ctx, domain.ItemEvent{
			Type:      eventType,
			ItemID:    item.ID,
			Name:      item.Name,
			Timestamp: s.now(),
		})
	}
}

func keep(items []domain.Item, match func(domain.Item) bool) []domain.Item {
	kept := items[:0:0]
	for _, item := range items {
		if match(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
