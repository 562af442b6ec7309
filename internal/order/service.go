package order

import (
	"context"
	"errors"
	"fmt"

	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/logger"

	"go.uber.org/zap"
)

// Inventory is the slice of the inventory service the order workflow
// needs: reference resolution and the stock mutator.
type Inventory interface {
	GetByID(ctx context.Context, id string) (*inventory.Item, error)
	ApplyStockUpdates(ctx context.Context, updates []inventory.StockUpdate) ([]*inventory.Item, error)
}

// Broadcaster pushes real-time events. "newOrder" goes to every admin
// session, "orderStatusUpdate" only to the owning user's sessions.
// Delivery is fire-and-forget.
type Broadcaster interface {
	PublishAdmin(event string, payload any)
	PublishUser(userID, event string, payload any)
}

type Service interface {
	QuotePrice(ctx context.Context, sel PizzaSelection) (float64, error)
	Create(ctx context.Context, userID string, input CreateOrderInput) (*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	GetByID(ctx context.Context, orderID, viewerID string, isAdmin bool) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error)
}

type service struct {
	repo Repository
	inv  Inventory
	bus  Broadcaster
}

func NewService(repo Repository, inv Inventory, bus Broadcaster) Service {
	return &service{repo: repo, inv: inv, bus: bus}
}

// QuotePrice sums the prices of the resolved selection. Ids that resolve
// to nothing contribute zero; the quote is informational only.
func (s *service) QuotePrice(ctx context.Context, sel PizzaSelection) (float64, error) {
	var total float64

	for _, id := range sel.ItemIDs() {
		item, err := s.inv.GetByID(ctx, id)
		if errors.Is(err, inventory.ErrItemNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		total += item.Price
	}

	return total, nil
}

func (s *service) Create(ctx context.Context, userID string, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", userID),
	)

	// 1. Structural validation: base and sauce are mandatory.
	if input.CustomPizza.BaseID == "" || input.CustomPizza.SauceID == "" {
		return nil, ErrBaseSauceNeeded
	}
	if input.PaymentID == "" {
		return nil, ErrPaymentRequired
	}

	// 2. Availability validation across every referenced component.
	itemIDs := input.CustomPizza.ItemIDs()
	for _, id := range itemIDs {
		item, err := s.inv.GetByID(ctx, id)
		if errors.Is(err, inventory.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: unknown", ErrItemUnavailable)
		}
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}
	}

	// 3. Persist. The client-computed total is stored as charged; the
	// payment id was already authorized upstream.
	o := &Order{
		UserID:        userID,
		TotalPrice:    input.TotalPrice,
		Status:        StatusReceived,
		PaymentID:     input.PaymentID,
		PaymentStatus: PaymentCompleted,
	}
	if err := s.repo.Create(ctx, o, input.CustomPizza); err != nil {
		return nil, err
	}

	resolved, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		// The order exists; fall back to the unresolved record.
		log.Error("failed to resolve created order", zap.Error(err))
		resolved = o
	}

	// 4. Best-effort bookkeeping: one decrement per distinct component.
	// The order is committed; a failure here is logged, never surfaced.
	updates := []inventory.StockUpdate{}
	seen := map[string]bool{}
	for _, id := range itemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		updates = append(updates, inventory.StockUpdate{ID: id, Quantity: 1})
	}
	if _, err := s.inv.ApplyStockUpdates(ctx, updates); err != nil {
		log.Error("stock update failed after order commit", zap.Error(err))
	}

	// 5. Real-time event for admin consoles.
	if s.bus != nil {
		s.bus.PublishAdmin("newOrder", resolved)
	}

	return resolved, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx, nil)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.List(ctx, &userID)
}

func (s *service) GetByID(ctx context.Context, orderID, viewerID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != viewerID {
		return nil, ErrNotAuthorized
	}

	return o, nil
}

type statusEvent struct {
	OrderID string `json:"orderId"`
	Status  Status `json:"status"`
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.PublishUser(o.UserID, "orderStatusUpdate", statusEvent{
			OrderID: o.ID,
			Status:  o.Status,
		})
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	return o, nil
}
