package order

import (
	"context"
	"database/sql"
	"time"

	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order, sel PizzaSelection) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, userID *string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const (
	slotBase   = "base"
	slotSauce  = "sauce"
	slotCheese = "cheese"
	slotVeggie = "veggies"
	slotMeat   = "meat"
)

func (r *repository) Create(ctx context.Context, o *Order, sel PizzaSelection) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_price, status, payment_id, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, o.ID, o.UserID, o.TotalPrice, o.Status, o.PaymentID, o.PaymentStatus, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	insert := func(componentID, slot string) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_components (order_id, component_id, slot)
			VALUES ($1, $2, $3)
		`, o.ID, componentID, slot)
		return err
	}

	if err := insert(sel.BaseID, slotBase); err != nil {
		log.Error("failed to insert base component", zap.Error(err))
		return err
	}
	if err := insert(sel.SauceID, slotSauce); err != nil {
		log.Error("failed to insert sauce component", zap.Error(err))
		return err
	}
	if sel.CheeseID != nil && *sel.CheeseID != "" {
		if err := insert(*sel.CheeseID, slotCheese); err != nil {
			log.Error("failed to insert cheese component", zap.Error(err))
			return err
		}
	}
	for _, id := range sel.VeggieIDs {
		if id == "" {
			continue
		}
		if err := insert(id, slotVeggie); err != nil {
			log.Error("failed to insert veggie component", zap.Error(err))
			return err
		}
	}
	for _, id := range sel.MeatIDs {
		if id == "" {
			continue
		}
		if err := insert(id, slotMeat); err != nil {
			log.Error("failed to insert meat component", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return nil
}

const orderQuery = `
	SELECT
		o.id, o.user_id, u.name, u.email,
		o.total_price, o.status, o.payment_id, o.payment_status,
		o.created_at, o.updated_at,
		oc.slot,
		i.id, i.name, i.category, i.quantity, i.price,
		i.is_available, i.threshold, i.description, i.rating, i.stock,
		i.created_at, i.updated_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN order_components oc ON oc.order_id = o.id
	LEFT JOIN inventory_items i ON i.id = oc.component_id
`

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	rows, err := r.db.QueryContext(ctx, orderQuery+" WHERE o.id = $1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *repository) List(ctx context.Context, userID *string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := orderQuery
	args := []any{}
	if userID != nil {
		query += " WHERE o.user_id = $1"
		args = append(args, *userID)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// collectOrders folds the joined component rows into orders, preserving
// the query's row order.
func collectOrders(rows *sql.Rows) ([]*Order, error) {
	byID := make(map[string]*Order)
	result := []*Order{}

	for rows.Next() {
		var (
			o         Order
			userName  string
			userEmail string

			slot sql.NullString

			itemID          sql.NullString
			itemName        sql.NullString
			itemCategory    sql.NullString
			itemQuantity    sql.NullInt64
			itemPrice       sql.NullFloat64
			itemAvailable   sql.NullBool
			itemThreshold   sql.NullInt64
			itemDescription sql.NullString
			itemRating      sql.NullFloat64
			itemStock       sql.NullInt64
			itemCreatedAt   sql.NullTime
			itemUpdatedAt   sql.NullTime
		)

		err := rows.Scan(
			&o.ID, &o.UserID, &userName, &userEmail,
			&o.TotalPrice, &o.Status, &o.PaymentID, &o.PaymentStatus,
			&o.CreatedAt, &o.UpdatedAt,
			&slot,
			&itemID, &itemName, &itemCategory, &itemQuantity, &itemPrice,
			&itemAvailable, &itemThreshold, &itemDescription, &itemRating, &itemStock,
			&itemCreatedAt, &itemUpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		ord, exists := byID[o.ID]
		if !exists {
			o.User = &OrderUser{ID: o.UserID, Name: userName, Email: userEmail}
			o.CustomPizza = CustomPizza{
				Veggies: []*inventory.Item{},
				Meat:    []*inventory.Item{},
			}
			ord = &o
			byID[o.ID] = ord
			result = append(result, ord)
		}

		if !slot.Valid || !itemID.Valid {
			continue
		}

		item := &inventory.Item{
			ID:          itemID.String,
			Name:        itemName.String,
			Category:    inventory.Category(itemCategory.String),
			Quantity:    int(itemQuantity.Int64),
			Price:       itemPrice.Float64,
			IsAvailable: itemAvailable.Bool,
			Threshold:   int(itemThreshold.Int64),
			CreatedAt:   itemCreatedAt.Time,
			UpdatedAt:   itemUpdatedAt.Time,
		}
		if itemDescription.Valid {
			item.Description = &itemDescription.String
		}
		if itemRating.Valid {
			item.Rating = &itemRating.Float64
		}
		if itemStock.Valid {
			s := int(itemStock.Int64)
			item.Stock = &s
		}

		switch slot.String {
		case slotBase:
			ord.CustomPizza.Base = item
		case slotSauce:
			ord.CustomPizza.Sauce = item
		case slotCheese:
			ord.CustomPizza.Cheese = item
		case slotVeggie:
			ord.CustomPizza.Veggies = append(ord.CustomPizza.Veggies, item)
		case slotMeat:
			ord.CustomPizza.Meat = append(ord.CustomPizza.Meat, item)
		}
	}

	return result, rows.Err()
}
