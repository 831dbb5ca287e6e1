package mocks

import (
	"context"

	"menu-svc/internal/domain"
	"menu-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type MenuService struct {
	mock.Mock
}

func (m *MenuService) Create(ctx context.Context, input service.CreateItemInput) (*domain.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MenuService) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MenuService) Delete(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MenuService) Get(ctx context.Context, id string, includeDeleted bool) (*domain.Item, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MenuService) All(ctx context.Context, includeDeleted bool) ([]domain.Item, error) {
	args := m.Called(ctx, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MenuService) Menu(ctx context.Context, q domain.MenuQuery) (*domain.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MenuService) ItemQRCode(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
