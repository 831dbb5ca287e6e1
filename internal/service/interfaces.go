package service

import (
	"context"

	"menu-svc/internal/domain"
)

// ItemRepository is the persisted item collection. List returns every record,
// soft-deleted ones included, in insertion order. FindByName only matches
// live records and is the uniqueness probe for create/rename.
type ItemRepository interface {
	Insert(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, id string) (*domain.Item, error)
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
}

// MenuCache stores computed menu pages. GetPage returns a nil page on a
// miss, together with the key addressing the generation it observed; a page
// computed after a miss must be stored under that same key, so a mutation
// that lands mid-read strands the write in the superseded generation
// instead of filing pre-mutation data under the current one.
type MenuCache interface {
	GetPage(ctx context.Context, q domain.MenuQuery) (*domain.Page, string, error)
	SetPage(ctx context.Context, key string, page *domain.Page) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishItemEvent(ctx context.Context, event domain.ItemEvent) error
}

type MenuServiceInterface interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id string) (*domain.Item, error)
	Get(ctx context.Context, id string, includeDeleted bool) (*domain.Item, error)
	All(ctx context.Context, includeDeleted bool) ([]domain.Item, error)
	Menu(ctx context.Context, q domain.MenuQuery) (*domain.Page, error)
	ItemQRCode(ctx context.Context, id string) ([]byte, error)
}

var _ MenuServiceInterface = (*MenuService)(nil)
