package alert

import (
	"context"
	"errors"
	"testing"

	"pizzeria-be/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLowStockLister struct {
	mock.Mock
}

func (m *MockLowStockLister) ListLowStock(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) LowStockDigest(ctx context.Context, items []*inventory.Item) error {
	return m.Called(ctx, items).Error(0)
}

func TestDigestHTML(t *testing.T) {
	desc := "Classic pizza with fresh mozzarella, tomatoes, and basil"
	items := []*inventory.Item{
		{Name: "Margherita Pizza", Category: inventory.CategoryPizza, Quantity: 3, Threshold: 10, Description: &desc},
		{Name: "Mozzarella", Category: inventory.CategoryCheese, Quantity: 0, Threshold: 20},
	}

	html := DigestHTML(items)

	assert.Contains(t, html, "<strong>Margherita Pizza</strong> (pizza): 3 units (Threshold: 10)")
	assert.Contains(t, html, "<strong>Mozzarella</strong> (cheese): 0 units (Threshold: 20)")
	assert.Contains(t, html, "Please restock these items")
}

func TestSweep_Run(t *testing.T) {
	t.Run("SendsDigestWhenItemsAreLow", func(t *testing.T) {
		lister := new(MockLowStockLister)
		alerter := new(MockAlerter)

		low := []*inventory.Item{{ID: "m1", Name: "Ham", Quantity: 2, Threshold: 20}}
		lister.On("ListLowStock", mock.Anything).Return(low, nil)
		alerter.On("LowStockDigest", mock.Anything, low).Return(nil)

		NewSweep(lister, alerter, "0 9 * * *").Run()

		alerter.AssertNumberOfCalls(t, "LowStockDigest", 1)
	})

	t.Run("NoDigestWhenAllStocked", func(t *testing.T) {
		lister := new(MockLowStockLister)
		alerter := new(MockAlerter)

		lister.On("ListLowStock", mock.Anything).Return([]*inventory.Item{}, nil)

		NewSweep(lister, alerter, "0 9 * * *").Run()

		alerter.AssertNotCalled(t, "LowStockDigest")
	})

	t.Run("QueryFailureSwallowed", func(t *testing.T) {
		lister := new(MockLowStockLister)
		alerter := new(MockAlerter)

		lister.On("ListLowStock", mock.Anything).Return(nil, errors.New("connection refused"))

		assert.NotPanics(t, func() {
			NewSweep(lister, alerter, "0 9 * * *").Run()
		})
		alerter.AssertNotCalled(t, "LowStockDigest")
	})

	t.Run("SendFailureSwallowed", func(t *testing.T) {
		lister := new(MockLowStockLister)
		alerter := new(MockAlerter)

		low := []*inventory.Item{{ID: "m1", Name: "Ham", Quantity: 2, Threshold: 20}}
		lister.On("ListLowStock", mock.Anything).Return(low, nil)
		alerter.On("LowStockDigest", mock.Anything, low).Return(errors.New("smtp refused"))

		assert.NotPanics(t, func() {
			NewSweep(lister, alerter, "0 9 * * *").Run()
		})
	})
}

func TestSweep_StartRejectsBadSpec(t *testing.T) {
	s := NewSweep(new(MockLowStockLister), new(MockAlerter), "not a cron spec")
	assert.Error(t, s.Start())
}
