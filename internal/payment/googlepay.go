package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"pizzeria-be/internal/logger"

	"go.uber.org/zap"
)

// googlePayGateway accepts any non-empty token and fabricates a
// transaction id. Google Pay tokens are produced client-side; this stub
// stands in for the server-side verification call.
type googlePayGateway struct{}

func NewGooglePayGateway() Gateway {
	return &googlePayGateway{}
}

func (g *googlePayGateway) Authorize(ctx context.Context, amount float64, token string) (*Authorization, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	auth := &Authorization{
		TransactionID: fmt.Sprintf("googlepay_%d_%s", time.Now().UnixMilli(), randomSuffix(9)),
		Amount:        amount,
		Currency:      "INR",
		Status:        "authorized",
	}

	logger.FromCtx(ctx).Info("payment authorized",
		zap.String("transaction_id", auth.TransactionID),
		zap.Float64("amount", amount),
	)

	return auth, nil
}

func randomSuffix(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)[:n]
}
