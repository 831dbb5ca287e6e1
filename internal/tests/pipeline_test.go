package tests

import (
	"context"
	"testing"

	"menu-svc/internal/domain"
	"menu-svc/internal/service"
	"menu-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedMenu builds a service over a real in-memory store with a known menu,
// including one soft-deleted item ("Old Special").
func seedMenu(t *testing.T) *service.MenuService {
	t.Helper()
	svc := service.NewMenuService(storage.NewMemoryRepository(), nil, nil, nil)
	ctx := context.Background()

	seed := []service.CreateItemInput{
		{Name: "Espresso", Category: domain.CategoryDrink, Price: 3.00, IsAvailable: true},
		{Name: "Burger", Category: domain.CategoryMain, Price: 9.50, IsAvailable: true},
		{Name: "Caesar Salad", Category: domain.CategorySide, Price: 7.25, IsAvailable: false},
		{Name: "Cheesecake", Category: domain.CategoryDessert, Price: 6.50, IsAvailable: true},
		{Name: "Iced Tea", Category: domain.CategoryDrink, Price: 2.50, IsAvailable: true},
		{Name: "Lemonade", Category: domain.CategoryDrink, Price: 2.50, IsAvailable: false},
		{Name: "Old Special", Category: domain.CategoryMain, Price: 12.00, IsAvailable: true},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	deleted, err := svc.Create(ctx, service.CreateItemInput{
		Name: "Retired Dish", Category: domain.CategoryMain, Price: 5.00, IsAvailable: true,
	})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, deleted.ID)
	require.NoError(t, err)

	return svc
}

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestMenu_DefaultSortsByNameAscending(t *testing.T) {
	svc := seedMenu(t)

	page, err := svc.Menu(context.Background(), domain.DefaultMenuQuery())
	assert.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, []string{
		"Burger", "Caesar Salad", "Cheesecake", "Espresso", "Iced Tea", "Lemonade", "Old Special",
	}, names(page.Items))
}

func TestMenu_ExcludesDeleted(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	query.Search = "Retired Dish"

	page, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestMenu_CategoryFilter(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	category := domain.CategoryDrink
	query.Category = &category

	page, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []string{"Espresso", "Iced Tea", "Lemonade"}, names(page.Items))
}

func TestMenu_AvailabilityFilter(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	available := false
	query.Available = &available

	page, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Caesar Salad", "Lemonade"}, names(page.Items))
}

func TestMenu_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	query.Search = "  TEA "

	page, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Iced Tea"}, names(page.Items))
}

func TestMenu_PriceSortTiesKeepInsertionOrder(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	query.Sort = domain.SortByPrice

	asc, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	// Iced Tea and Lemonade tie at 2.50; Iced Tea was inserted first.
	assert.Equal(t, []string{
		"Iced Tea", "Lemonade", "Espresso", "Cheesecake", "Caesar Salad", "Burger", "Old Special",
	}, names(asc.Items))

	query.Order = domain.OrderDesc
	desc, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Old Special", "Burger", "Caesar Salad", "Cheesecake", "Espresso", "Iced Tea", "Lemonade",
	}, names(desc.Items))
}

func TestMenu_PaginationConcatenationReproducesFullSet(t *testing.T) {
	svc := seedMenu(t)
	ctx := context.Background()

	full, err := svc.Menu(ctx, domain.DefaultMenuQuery())
	require.NoError(t, err)

	collected := []string{}
	for pageNum := 1; ; pageNum++ {
		query := domain.DefaultMenuQuery()
		query.Page = pageNum
		query.PageSize = 2

		page, err := svc.Menu(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, full.Total, page.Total)
		if len(page.Items) == 0 {
			break
		}
		collected = append(collected, names(page.Items)...)
	}
	assert.Equal(t, names(full.Items), collected)
}

func TestMenu_PageBeyondRangeIsEmptyNotError(t *testing.T) {
	svc := seedMenu(t)
	query := domain.DefaultMenuQuery()
	query.Page = 50

	page, err := svc.Menu(context.Background(), query)
	assert.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Empty(t, page.Items)
	assert.Equal(t, 50, page.Page)
}

func TestAll_IncludeDeletedToggle(t *testing.T) {
	svc := seedMenu(t)
	ctx := context.Background()

	live, err := svc.All(ctx, false)
	assert.NoError(t, err)
	assert.Len(t, live, 7)

	everything, err := svc.All(ctx, true)
	assert.NoError(t, err)
	assert.Len(t, everything, 8)
}

func TestCreate_DuplicateAgainstLiveItemsOnly(t *testing.T) {
	svc := seedMenu(t)
	ctx := context.Background()

	// Same name as a live item, any case and padding: conflict.
	_, err := svc.Create(ctx, service.CreateItemInput{
		Name: " iced tea ", Category: domain.CategoryDrink, Price: 2, IsAvailable: true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// Same name as the soft-deleted item: allowed.
	_, err = svc.Create(ctx, service.CreateItemInput{
		Name: "Retired Dish", Category: domain.CategoryMain, Price: 5, IsAvailable: true,
	})
	assert.NoError(t, err)
}
