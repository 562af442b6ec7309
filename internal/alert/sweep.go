package alert

import (
	"context"

	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LowStockLister is the slice of the inventory repository the sweep
// reads from.
type LowStockLister interface {
	ListLowStock(ctx context.Context) ([]*inventory.Item, error)
}

// Sweep runs the scheduled low-stock check: query items at or below
// threshold and send a single digest when any exist. It is independent of
// the per-order detection, so the same item can be reported by both on
// the same day.
type Sweep struct {
	repo    LowStockLister
	alerter inventory.Alerter
	spec    string
	cron    *cron.Cron
}

func NewSweep(repo LowStockLister, alerter inventory.Alerter, spec string) *Sweep {
	return &Sweep{repo: repo, alerter: alerter, spec: spec}
}

func (s *Sweep) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.Run); err != nil {
		return err
	}
	s.cron.Start()

	logger.L().Info("low stock sweep scheduled", zap.String("spec", s.spec))
	return nil
}

func (s *Sweep) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run performs one sweep. Failures are logged and swallowed; the next
// tick tries again.
func (s *Sweep) Run() {
	ctx := context.Background()
	log := logger.L().With(zap.String("job", "low_stock_sweep"))

	log.Info("running daily inventory check")

	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		log.Error("failed to query low stock items", zap.Error(err))
		return
	}

	if len(items) == 0 {
		log.Info("all items are sufficiently stocked")
		return
	}

	if err := s.alerter.LowStockDigest(ctx, items); err != nil {
		log.Error("failed to send low stock digest", zap.Error(err))
		return
	}

	log.Info("low stock digest dispatched", zap.Int("item_count", len(items)))
}
