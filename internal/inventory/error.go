package inventory

import "errors"

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTaken       = errors.New("an item with this name already exists")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNegativeAmount  = errors.New("quantity, price and threshold must not be negative")
	ErrItemInUse       = errors.New("item is referenced by existing orders")
)
