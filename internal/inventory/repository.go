package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pizzeria-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, category *Category, availableOnly bool) ([]*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, input CreateItemInput) (*Item, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (*Item, error)
	Delete(ctx context.Context, id string) error
	ListLowStock(ctx context.Context) ([]*Item, error)

	// DecrementStock subtracts amount from the item's quantity in a single
	// statement, clamping at zero and flipping is_available off when the
	// clamp hits. The legacy stock mirror follows quantity. Returns the
	// updated row or ErrItemNotFound.
	DecrementStock(ctx context.Context, id string, amount int) (*Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, name, category, quantity, price, is_available, threshold, description, rating, stock, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var (
		it          Item
		description sql.NullString
		rating      sql.NullFloat64
		stock       sql.NullInt64
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Price,
		&it.IsAvailable, &it.Threshold, &description, &rating, &stock,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		it.Description = &description.String
	}
	if rating.Valid {
		it.Rating = &rating.Float64
	}
	if stock.Valid {
		s := int(stock.Int64)
		it.Stock = &s
	}
	return &it, nil
}

func (r *repository) List(ctx context.Context, category *Category, availableOnly bool) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Bool("available_only", availableOnly),
	)

	whereClause := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if availableOnly {
		whereClause += " AND is_available = TRUE"
	}

	if category != nil {
		whereClause += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, *category)
		argIndex++
	}

	query := "SELECT " + itemColumns + " FROM inventory_items" + whereClause + " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query inventory", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan inventory row", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM inventory_items WHERE id = $1", id)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, input CreateItemInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	it := &Item{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Price:       input.Price,
		IsAvailable: true,
		Threshold:   20,
		Description: input.Description,
		Rating:      input.Rating,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.IsAvailable != nil {
		it.IsAvailable = *input.IsAvailable
	}
	if input.Threshold != nil {
		it.Threshold = *input.Threshold
	}
	// Mirror quantity into the legacy stock column on create.
	stock := it.Quantity
	it.Stock = &stock

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items
			(id, name, category, quantity, price, is_available, threshold, description, rating, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, it.ID, it.Name, it.Category, it.Quantity, it.Price, it.IsAvailable,
		it.Threshold, it.Description, it.Rating, it.Stock, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "inventory_items_name_key") {
			return nil, ErrNameTaken
		}
		log.Error("failed to insert inventory item", zap.Error(err))
		return nil, err
	}

	log.Info("inventory item created", zap.String("item_id", it.ID))
	return it, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateItemInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("item_id", id),
	)

	setClauses := []string{}
	args := []any{}
	argIndex := 1

	addSet := func(col string, val any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIndex))
		args = append(args, val)
		argIndex++
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Category != nil {
		addSet("category", *input.Category)
	}
	if input.Quantity != nil {
		addSet("quantity", *input.Quantity)
		// keep the legacy mirror in step when quantity is edited directly
		addSet("stock", *input.Quantity)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.IsAvailable != nil {
		addSet("is_available", *input.IsAvailable)
	}
	if input.Threshold != nil {
		addSet("threshold", *input.Threshold)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Rating != nil {
		addSet("rating", *input.Rating)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	addSet("updated_at", time.Now())

	query := fmt.Sprintf(`
		UPDATE inventory_items SET %s
		WHERE id = $%d
		RETURNING `+itemColumns,
		strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	row := r.db.QueryRowContext(ctx, query, args...)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "inventory_items_name_key") {
			return nil, ErrNameTaken
		}
		log.Error("failed to update inventory item", zap.Error(err))
		return nil, err
	}

	return it, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		if strings.Contains(err.Error(), "order_components_component_id_fkey") {
			return ErrItemInUse
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) ListLowStock(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM inventory_items WHERE quantity <= threshold ORDER BY quantity ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) DecrementStock(ctx context.Context, id string, amount int) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DecrementStock"),
		zap.String("item_id", id),
		zap.Int("amount", amount),
	)

	// Single conditional update so concurrent orders cannot drive the
	// count negative between a read and a write.
	row := r.db.QueryRowContext(ctx, `
		UPDATE inventory_items
		SET quantity = GREATEST(quantity - $2, 0),
		    is_available = CASE WHEN quantity - $2 <= 0 THEN FALSE ELSE is_available END,
		    stock = GREATEST(quantity - $2, 0),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns, id, amount)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		log.Error("failed to decrement stock", zap.Error(err))
		return nil, err
	}

	log.Debug("stock decremented",
		zap.Int("quantity", it.Quantity),
		zap.Bool("is_available", it.IsAvailable),
	)
	return it, nil
}
