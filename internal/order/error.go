package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrBaseSauceNeeded = errors.New("base and sauce are required")
	ErrItemUnavailable = errors.New("item is not available")
	ErrPaymentRequired = errors.New("payment id is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNotAuthorized   = errors.New("not authorized to access this order")
)
