package alert

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/logger"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

type MailConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// mailAlerter delivers the low-stock digest to the operations inbox.
type mailAlerter struct {
	cfg MailConfig
}

func NewMailAlerter(cfg MailConfig) inventory.Alerter {
	return &mailAlerter{cfg: cfg}
}

func (a *mailAlerter) LowStockDigest(ctx context.Context, items []*inventory.Item) error {
	if len(items) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = a.cfg.From
	e.To = []string{a.cfg.AdminEmail}
	e.Subject = "Low Stock Alert - Pizza App"
	e.HTML = []byte(DigestHTML(items))

	addr := fmt.Sprintf("%s:%s", a.cfg.Host, a.cfg.Port)
	auth := smtp.PlainAuth("", a.cfg.Username, a.cfg.Password, a.cfg.Host)

	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send low stock digest: %w", err)
	}

	logger.FromCtx(ctx).Info("low stock digest sent",
		zap.Int("item_count", len(items)),
		zap.String("to", a.cfg.AdminEmail),
	)
	return nil
}

// DigestHTML renders one message listing every low item.
func DigestHTML(items []*inventory.Item) string {
	var list strings.Builder
	for _, it := range items {
		fmt.Fprintf(&list,
			"<li><strong>%s</strong> (%s): %d units (Threshold: %d)</li>",
			it.Name, it.Category, it.Quantity, it.Threshold,
		)
	}

	return fmt.Sprintf(`
		<h1>Low Stock Alert</h1>
		<p>The following items are running low on stock:</p>
		<ul>%s</ul>
		<p>Please restock these items as soon as possible.</p>
	`, list.String())
}
