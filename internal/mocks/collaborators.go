package mocks

import (
	"context"

	"menu-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuCache struct {
	mock.Mock
}

func (m *MenuCache) GetPage(ctx context.Context, q domain.MenuQuery) (*domain.Page, string, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Page), args.String(1), args.Error(2)
}

func (m *MenuCache) SetPage(ctx context.Context, key string, page *domain.Page) error {
	args := m.Called(ctx, key, page)
	return args.Error(0)
}

func (m *MenuCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishItemEvent(ctx context.Context, event domain.ItemEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(itemID string) ([]byte, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
