package inventory

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemCols = []string{
	"id", "name", "category", "quantity", "price", "is_available",
	"threshold", "description", "rating", "stock", "created_at", "updated_at",
}

func itemRow(id, name string, category Category, qty int, price float64, available bool, threshold int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(itemCols).
		AddRow(id, name, category, qty, price, available, threshold, nil, nil, qty, now, now)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory_items WHERE id = \\$1").
			WithArgs("b1").
			WillReturnRows(itemRow("b1", "Thin Crust", CategoryBase, 50, 100, true, 20))

		it, err := repo.GetByID(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, "Thin Crust", it.Name)
		assert.Equal(t, 50, it.Quantity)
		require.NotNil(t, it.Stock)
		assert.Equal(t, 50, *it.Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory_items WHERE id = \\$1").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("FiltersByCategory", func(t *testing.T) {
		rows := itemRow("s1", "Marinara Sauce", CategorySauce, 60, 30, true, 20)

		mock.ExpectQuery("SELECT (.+) FROM inventory_items WHERE 1=1 AND is_available = TRUE AND category = \\$1 ORDER BY name ASC").
			WithArgs(CategorySauce).
			WillReturnRows(rows)

		cat := CategorySauce
		items, err := repo.List(ctx, &cat, true)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Marinara Sauce", items[0].Name)
	})

	t.Run("EmptyResultIsEmptySlice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory_items WHERE 1=1 ORDER BY name ASC").
			WillReturnRows(sqlmock.NewRows(itemCols))

		items, err := repo.List(ctx, nil, false)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ReturnsUpdatedRow", func(t *testing.T) {
		mock.ExpectQuery("UPDATE inventory_items").
			WithArgs("b1", 1).
			WillReturnRows(itemRow("b1", "Thin Crust", CategoryBase, 20, 100, true, 20))

		it, err := repo.DecrementStock(ctx, "b1", 1)
		require.NoError(t, err)
		assert.Equal(t, 20, it.Quantity)
		assert.True(t, it.LowStock())
	})

	t.Run("ClampedToZeroAndDelisted", func(t *testing.T) {
		mock.ExpectQuery("UPDATE inventory_items").
			WithArgs("b1", 5).
			WillReturnRows(itemRow("b1", "Thin Crust", CategoryBase, 0, 100, false, 20))

		it, err := repo.DecrementStock(ctx, "b1", 5)
		require.NoError(t, err)
		assert.Equal(t, 0, it.Quantity)
		assert.False(t, it.IsAvailable)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE inventory_items").
			WithArgs("ghost", 1).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.DecrementStock(ctx, "ghost", 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM inventory_items WHERE id = \\$1").
			WithArgs("b1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "b1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM inventory_items WHERE id = \\$1").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrItemNotFound)
	})

	t.Run("ReferencedByOrder", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM inventory_items WHERE id = \\$1").
			WithArgs("b1").
			WillReturnError(errors.New(`pq: update or delete on table "inventory_items" violates foreign key constraint "order_components_component_id_fkey" on table "order_components"`))

		assert.ErrorIs(t, repo.Delete(ctx, "b1"), ErrItemInUse)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListLowStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(itemCols).
		AddRow("m1", "Ham", CategoryMeat, 2, 45.0, true, 20, nil, nil, 2, time.Now(), time.Now()).
		AddRow("c1", "Gouda", CategoryCheese, 10, 70.0, true, 20, nil, nil, 10, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM inventory_items WHERE quantity <= threshold ORDER BY quantity ASC").
		WillReturnRows(rows)

	items, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ham", items[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
