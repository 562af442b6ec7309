package payment

import (
	"context"
	"errors"
)

var ErrTokenRequired = errors.New("payment token is required")

// Authorization is the result of a payment authorization attempt.
type Authorization struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
}

// Gateway authorizes a client-side payment proof and returns a
// transaction id the order workflow records as the payment id. The
// shipped implementation trusts the token without a gateway round-trip;
// production deployments must supply a verifying one.
type Gateway interface {
	Authorize(ctx context.Context, amount float64, token string) (*Authorization, error)
}
