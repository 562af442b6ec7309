package inventory

import (
	"context"
	"strings"

	"pizzeria-be/internal/logger"

	"go.uber.org/zap"
)

// Alerter receives the low-stock digest produced by the stock mutator and
// the daily sweep. Implementations live in the alert package; failures are
// logged by callers and never escalate.
type Alerter interface {
	LowStockDigest(ctx context.Context, items []*Item) error
}

type Service interface {
	List(ctx context.Context, category *Category) ([]*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, input CreateItemInput) (*Item, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (*Item, error)
	Delete(ctx context.Context, id string) error
	LowStock(ctx context.Context) ([]*Item, error)

	// ApplyStockUpdates runs the stock mutator: one conditional decrement
	// per line, unknown ids skipped, a single digest dispatched when any
	// line lands at or below its threshold. Returns the low-stock report.
	ApplyStockUpdates(ctx context.Context, updates []StockUpdate) ([]*Item, error)
}

type service struct {
	repo    Repository
	alerter Alerter
}

func NewService(repo Repository, alerter Alerter) Service {
	return &service{repo: repo, alerter: alerter}
}

func (s *service) List(ctx context.Context, category *Category) ([]*Item, error) {
	if category != nil && !ValidCategory(*category) {
		return nil, ErrInvalidCategory
	}
	return s.repo.List(ctx, category, true)
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*Item, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}
	if input.Quantity < 0 || input.Price < 0 || (input.Threshold != nil && *input.Threshold < 0) {
		return nil, ErrNegativeAmount
	}

	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input UpdateItemInput) (*Item, error) {
	if input.Category != nil && !ValidCategory(*input.Category) {
		return nil, ErrInvalidCategory
	}
	if (input.Quantity != nil && *input.Quantity < 0) ||
		(input.Price != nil && *input.Price < 0) ||
		(input.Threshold != nil && *input.Threshold < 0) {
		return nil, ErrNegativeAmount
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		input.Name = &trimmed
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) LowStock(ctx context.Context) ([]*Item, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) ApplyStockUpdates(ctx context.Context, updates []StockUpdate) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ApplyStockUpdates"),
		zap.Int("line_count", len(updates)),
	)

	lowStock := []*Item{}

	for _, u := range updates {
		it, err := s.repo.DecrementStock(ctx, u.ID, u.Quantity)
		if err == ErrItemNotFound {
			// unknown items are skipped, the rest of the batch proceeds
			log.Warn("stock update skipped, item not found", zap.String("item_id", u.ID))
			continue
		}
		if err != nil {
			return nil, err
		}

		if it.LowStock() {
			lowStock = append(lowStock, it)
		}
	}

	if len(lowStock) > 0 && s.alerter != nil {
		// Stock state is already durable; the digest is advisory.
		if err := s.alerter.LowStockDigest(ctx, lowStock); err != nil {
			log.Error("failed to send low stock digest", zap.Error(err))
		}
	}

	return lowStock, nil
}
