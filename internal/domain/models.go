package domain

import (
	"errors"
	"strings"
	"time"
)

// Category is the fixed set of menu sections an item can belong to.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

var ErrUnknownCategory = errors.New("unknown category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryMain, CategorySide, CategoryDrink, CategoryDessert:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	IsAvailable bool      `json:"isAvailable"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizedName is the form used for uniqueness checks and search matching.
func NormalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ItemPatch carries a partial update. A nil field means "leave unchanged";
// a non-nil field is applied even when it equals the current value.
type ItemPatch struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Price       *float64  `json:"price"`
	IsAvailable *bool     `json:"isAvailable"`
}

type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// MenuQuery is the validated input of the listing pipeline. Nil filter
// pointers mean "not supplied".
type MenuQuery struct {
	Search    string
	Category  *Category
	Available *bool
	Sort      SortField
	Order     SortOrder
	Page      int
	PageSize  int
}

// DefaultMenuQuery returns a query with the documented defaults applied.
func DefaultMenuQuery() MenuQuery {
	return MenuQuery{
		Sort:     SortByName,
		Order:    OrderAsc,
		Page:     1,
		PageSize: 10,
	}
}

type Page struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
	Items    []Item `json:"items"`
}

// ItemEvent is published to the menu.events topic after every successful mutation.
type ItemEvent struct {
	Type      string    `json:"type"`
	ItemID    string    `json:"item_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventItemCreated = "item_created"
	EventItemUpdated = "item_updated"
	EventItemDeleted = "item_deleted"
)
