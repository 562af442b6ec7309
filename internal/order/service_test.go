package order

import (
	"context"
	"errors"
	"testing"

	"pizzeria-be/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order, sel PizzaSelection) error {
	args := m.Called(ctx, o, sel)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID *string) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) GetByID(ctx context.Context, id string) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventory) ApplyStockUpdates(ctx context.Context, updates []inventory.StockUpdate) ([]*inventory.Item, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) PublishAdmin(event string, payload any) {
	m.Called(event, payload)
}

func (m *MockBroadcaster) PublishUser(userID, event string, payload any) {
	m.Called(userID, event, payload)
}

func availableItem(id, name string, price float64, qty int) *inventory.Item {
	return &inventory.Item{
		ID:          id,
		Name:        name,
		Category:    inventory.CategoryBase,
		Price:       price,
		Quantity:    qty,
		IsAvailable: true,
		Threshold:   20,
	}
}

func TestService_QuotePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("SumsResolvedPrices", func(t *testing.T) {
		inv := new(MockInventory)
		svc := NewService(new(MockRepository), inv, nil)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "s1").Return(availableItem("s1", "Marinara Sauce", 30, 10), nil)
		inv.On("GetByID", ctx, "v1").Return(availableItem("v1", "Onions", 15, 10), nil)

		sel := PizzaSelection{BaseID: "b1", SauceID: "s1", VeggieIDs: []string{"v1"}}

		total, err := svc.QuotePrice(ctx, sel)
		require.NoError(t, err)
		assert.Equal(t, 145.0, total)

		// repeated calls against unchanged prices are deterministic
		again, err := svc.QuotePrice(ctx, sel)
		require.NoError(t, err)
		assert.Equal(t, total, again)
	})

	t.Run("UnknownIDContributesZero", func(t *testing.T) {
		inv := new(MockInventory)
		svc := NewService(new(MockRepository), inv, nil)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "ghost").Return(nil, inventory.ErrItemNotFound)

		total, err := svc.QuotePrice(ctx, PizzaSelection{BaseID: "b1", SauceID: "ghost"})
		require.NoError(t, err)
		assert.Equal(t, 100.0, total)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	validInput := func() CreateOrderInput {
		return CreateOrderInput{
			CustomPizza: PizzaSelection{BaseID: "b1", SauceID: "s1"},
			TotalPrice:  130,
			PaymentID:   "googlepay_123_abc",
		}
	}

	t.Run("MissingBaseRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)

		input := validInput()
		input.CustomPizza.BaseID = ""

		_, err := svc.Create(ctx, "u1", input)
		assert.ErrorIs(t, err, ErrBaseSauceNeeded)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("MissingSauceRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)

		input := validInput()
		input.CustomPizza.SauceID = ""

		_, err := svc.Create(ctx, "u1", input)
		assert.ErrorIs(t, err, ErrBaseSauceNeeded)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("MissingPaymentRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)

		input := validInput()
		input.PaymentID = ""

		_, err := svc.Create(ctx, "u1", input)
		assert.ErrorIs(t, err, ErrPaymentRequired)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("OutOfStockComponentRejected", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		svc := NewService(repo, inv, nil)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "s1").Return(availableItem("s1", "Marinara Sauce", 30, 0), nil)

		_, err := svc.Create(ctx, "u1", validInput())
		assert.ErrorIs(t, err, ErrItemUnavailable)
		assert.Contains(t, err.Error(), "Marinara Sauce")

		// nothing persisted, nothing decremented
		repo.AssertNotCalled(t, "Create")
		inv.AssertNotCalled(t, "ApplyStockUpdates")
	})

	t.Run("DelistedComponentRejected", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		svc := NewService(repo, inv, nil)

		delisted := availableItem("b1", "Thin Crust", 100, 10)
		delisted.IsAvailable = false
		inv.On("GetByID", ctx, "b1").Return(delisted, nil)

		_, err := svc.Create(ctx, "u1", validInput())
		assert.ErrorIs(t, err, ErrItemUnavailable)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownComponentRejected", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		svc := NewService(repo, inv, nil)

		inv.On("GetByID", ctx, "b1").Return(nil, inventory.ErrItemNotFound)

		_, err := svc.Create(ctx, "u1", validInput())
		assert.ErrorIs(t, err, ErrItemUnavailable)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		bus := new(MockBroadcaster)
		svc := NewService(repo, inv, bus)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "s1").Return(availableItem("s1", "Marinara Sauce", 30, 10), nil)

		repo.On("Create", ctx, mock.AnythingOfType("*order.Order"), mock.Anything).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*Order)
				assert.Equal(t, StatusReceived, o.Status)
				assert.Equal(t, PaymentCompleted, o.PaymentStatus)
				assert.Equal(t, 130.0, o.TotalPrice)
				o.ID = "order-1"
			}).
			Return(nil)

		resolved := &Order{ID: "order-1", UserID: "u1", Status: StatusReceived, PaymentStatus: PaymentCompleted}
		repo.On("GetByID", ctx, "order-1").Return(resolved, nil)

		inv.On("ApplyStockUpdates", ctx, []inventory.StockUpdate{
			{ID: "b1", Quantity: 1},
			{ID: "s1", Quantity: 1},
		}).Return([]*inventory.Item{}, nil)

		bus.On("PublishAdmin", "newOrder", resolved).Return()

		o, err := svc.Create(ctx, "u1", validInput())
		require.NoError(t, err)
		assert.Equal(t, "order-1", o.ID)

		repo.AssertExpectations(t)
		inv.AssertExpectations(t)
		bus.AssertNumberOfCalls(t, "PublishAdmin", 1)
	})

	t.Run("DuplicateComponentsDecrementedOnce", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		svc := NewService(repo, inv, nil)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "s1").Return(availableItem("s1", "Marinara Sauce", 30, 10), nil)
		inv.On("GetByID", ctx, "v1").Return(availableItem("v1", "Onions", 15, 10), nil)

		repo.On("Create", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*Order).ID = "order-2" }).
			Return(nil)
		repo.On("GetByID", ctx, "order-2").Return(&Order{ID: "order-2", UserID: "u1"}, nil)

		inv.On("ApplyStockUpdates", ctx, []inventory.StockUpdate{
			{ID: "b1", Quantity: 1},
			{ID: "s1", Quantity: 1},
			{ID: "v1", Quantity: 1},
		}).Return([]*inventory.Item{}, nil)

		input := validInput()
		input.CustomPizza.VeggieIDs = []string{"v1", "v1"}

		_, err := svc.Create(ctx, "u1", input)
		require.NoError(t, err)
		inv.AssertExpectations(t)
	})

	t.Run("StockFailureAfterCommitDoesNotFailOrder", func(t *testing.T) {
		repo := new(MockRepository)
		inv := new(MockInventory)
		svc := NewService(repo, inv, nil)

		inv.On("GetByID", ctx, "b1").Return(availableItem("b1", "Thin Crust", 100, 10), nil)
		inv.On("GetByID", ctx, "s1").Return(availableItem("s1", "Marinara Sauce", 30, 10), nil)

		repo.On("Create", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*Order).ID = "order-3" }).
			Return(nil)
		repo.On("GetByID", ctx, "order-3").Return(&Order{ID: "order-3", UserID: "u1"}, nil)

		inv.On("ApplyStockUpdates", ctx, mock.Anything).
			Return(nil, errors.New("db down"))

		// the order is the source of truth; bookkeeping is advisory
		o, err := svc.Create(ctx, "u1", validInput())
		require.NoError(t, err)
		assert.Equal(t, "order-3", o.ID)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	stored := &Order{ID: "o1", UserID: "owner"}

	t.Run("OwnerAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)
		repo.On("GetByID", ctx, "o1").Return(stored, nil)

		o, err := svc.GetByID(ctx, "o1", "owner", false)
		require.NoError(t, err)
		assert.Equal(t, "o1", o.ID)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)
		repo.On("GetByID", ctx, "o1").Return(stored, nil)

		_, err := svc.GetByID(ctx, "o1", "someone-else", true)
		assert.NoError(t, err)
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)
		repo.On("GetByID", ctx, "o1").Return(stored, nil)

		_, err := svc.GetByID(ctx, "o1", "someone-else", false)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)
		repo.On("GetByID", ctx, "missing").Return(nil, ErrOrderNotFound)

		_, err := svc.GetByID(ctx, "missing", "owner", false)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidStatusRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)

		_, err := svc.UpdateStatus(ctx, "o1", Status("On the Moon"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("EventScopedToOwner", func(t *testing.T) {
		repo := new(MockRepository)
		bus := new(MockBroadcaster)
		svc := NewService(repo, new(MockInventory), bus)

		repo.On("UpdateStatus", ctx, "o1", StatusInKitchen).Return(nil)
		repo.On("GetByID", ctx, "o1").Return(&Order{ID: "o1", UserID: "owner", Status: StatusInKitchen}, nil)
		bus.On("PublishUser", "owner", "orderStatusUpdate", statusEvent{OrderID: "o1", Status: StatusInKitchen}).Return()

		o, err := svc.UpdateStatus(ctx, "o1", StatusInKitchen)
		require.NoError(t, err)
		assert.Equal(t, StatusInKitchen, o.Status)

		bus.AssertNumberOfCalls(t, "PublishUser", 1)
		bus.AssertNotCalled(t, "PublishAdmin")
	})

	t.Run("BackwardTransitionAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		bus := new(MockBroadcaster)
		svc := NewService(repo, new(MockInventory), bus)

		repo.On("UpdateStatus", ctx, "o1", StatusReceived).Return(nil)
		repo.On("GetByID", ctx, "o1").Return(&Order{ID: "o1", UserID: "owner", Status: StatusReceived}, nil)
		bus.On("PublishUser", mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := svc.UpdateStatus(ctx, "o1", StatusReceived)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockInventory), nil)
		repo.On("UpdateStatus", ctx, "missing", StatusDelivered).Return(ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, "missing", StatusDelivered)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
