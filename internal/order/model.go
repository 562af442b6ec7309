package order

import (
	"time"

	"pizzeria-be/internal/inventory"
)

type Status string

const (
	StatusReceived  Status = "Order Received"
	StatusInKitchen Status = "In the Kitchen"
	StatusDelivery  Status = "Sent to Delivery"
	StatusDelivered Status = "Delivered"
)

// ValidStatus reports whether s is one of the four defined statuses.
// Transitions are deliberately unconstrained; staff may move an order
// backward in the sequence.
func ValidStatus(s Status) bool {
	switch s {
	case StatusReceived, StatusInKitchen, StatusDelivery, StatusDelivered:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PizzaSelection is the set of component ids chosen for one order.
// Base and sauce are required, cheese is optional, veggies and meat are
// unordered sets.
type PizzaSelection struct {
	BaseID    string   `json:"base"`
	SauceID   string   `json:"sauce"`
	CheeseID  *string  `json:"cheese"`
	VeggieIDs []string `json:"veggies"`
	MeatIDs   []string `json:"meat"`
}

// ItemIDs collects the non-empty component ids of the selection.
func (s PizzaSelection) ItemIDs() []string {
	ids := []string{}
	if s.BaseID != "" {
		ids = append(ids, s.BaseID)
	}
	if s.SauceID != "" {
		ids = append(ids, s.SauceID)
	}
	if s.CheeseID != nil && *s.CheeseID != "" {
		ids = append(ids, *s.CheeseID)
	}
	for _, id := range s.VeggieIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	for _, id := range s.MeatIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// CustomPizza is the selection with every reference resolved to the full
// inventory record, as returned to clients.
type CustomPizza struct {
	Base    *inventory.Item   `json:"base"`
	Sauce   *inventory.Item   `json:"sauce"`
	Cheese  *inventory.Item   `json:"cheese,omitempty"`
	Veggies []*inventory.Item `json:"veggies"`
	Meat    []*inventory.Item `json:"meat"`
}

// OrderUser is the slice of the user record exposed on order reads.
type OrderUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	User          *OrderUser    `json:"user,omitempty"`
	CustomPizza   CustomPizza   `json:"customPizza"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        Status        `json:"status"`
	PaymentID     string        `json:"paymentId"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type CreateOrderInput struct {
	CustomPizza PizzaSelection `json:"customPizza"`
	TotalPrice  float64        `json:"totalPrice"`
	PaymentID   string         `json:"paymentId"`
}
