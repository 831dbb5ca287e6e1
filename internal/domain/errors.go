package domain

import "errors"

var (
	ErrNotFound      = errors.New("item not found")
	ErrInvalidName   = errors.New("name cannot be blank")
	ErrInvalidPrice  = errors.New("price must be >= 0")
	ErrDuplicateName = errors.New("name not unique")
	ErrItemDeleted   = errors.New("item is deleted")
)
