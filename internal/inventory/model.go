package inventory

import "time"

type Category string

const (
	CategoryPizza  Category = "pizza"
	CategoryBase   Category = "base"
	CategorySauce  Category = "sauce"
	CategoryCheese Category = "cheese"
	CategoryVeggie Category = "veggies"
	CategoryMeat   Category = "meat"
)

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryPizza, CategoryBase, CategorySauce, CategoryCheese, CategoryVeggie, CategoryMeat:
		return true
	}
	return false
}

// Item is a stock-keeping record for a finished pizza or a customizable
// component. Stock is a legacy mirror of Quantity kept for older clients;
// Quantity is authoritative.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	IsAvailable bool      `json:"isAvailable"`
	Threshold   int       `json:"threshold"`
	Description *string   `json:"description,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LowStock reports whether the item sits at or below its threshold.
func (i *Item) LowStock() bool {
	return i.Quantity <= i.Threshold
}

type CreateItemInput struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
	Threshold   *int     `json:"threshold"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
}

type UpdateItemInput struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Quantity    *int      `json:"quantity"`
	Price       *float64  `json:"price"`
	IsAvailable *bool     `json:"isAvailable"`
	Threshold   *int      `json:"threshold"`
	Description *string   `json:"description"`
	Rating      *float64  `json:"rating"`
}

// StockUpdate is one decrement line applied by the stock mutator.
type StockUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
