package main

import (
	"context"
	"fmt"
	"log"

	"pizzeria-be/internal/config"
	"pizzeria-be/internal/db"
	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/user"
	"pizzeria-be/internal/utils"
)

func ptr[T any](v T) *T { return &v }

var catalogue = []inventory.CreateItemInput{
	// Ready-to-order pizzas
	{Name: "Margherita Pizza", Category: inventory.CategoryPizza, Quantity: 50, Price: 299, Threshold: ptr(10),
		Description: ptr("Classic pizza with fresh mozzarella, tomatoes, and basil"), Rating: ptr(4.5)},
	{Name: "Pepperoni Pizza", Category: inventory.CategoryPizza, Quantity: 45, Price: 399, Threshold: ptr(10),
		Description: ptr("Loaded with spicy pepperoni and mozzarella cheese"), Rating: ptr(4.8)},
	{Name: "Veggie Supreme", Category: inventory.CategoryPizza, Quantity: 40, Price: 349, Threshold: ptr(10),
		Description: ptr("Fresh vegetables with bell peppers, mushrooms, onions, and olives"), Rating: ptr(4.3)},
	{Name: "BBQ Chicken Pizza", Category: inventory.CategoryPizza, Quantity: 38, Price: 429, Threshold: ptr(10),
		Description: ptr("Grilled chicken with tangy BBQ sauce and onions"), Rating: ptr(4.7)},
	{Name: "Hawaiian Pizza", Category: inventory.CategoryPizza, Quantity: 35, Price: 379, Threshold: ptr(10),
		Description: ptr("Ham and pineapple with mozzarella cheese"), Rating: ptr(4.2)},
	{Name: "Meat Lovers Pizza", Category: inventory.CategoryPizza, Quantity: 30, Price: 499, Threshold: ptr(10),
		Description: ptr("Pepperoni, sausage, bacon, and ham loaded with cheese"), Rating: ptr(4.9)},
	{Name: "Four Cheese Pizza", Category: inventory.CategoryPizza, Quantity: 32, Price: 449, Threshold: ptr(10),
		Description: ptr("Mozzarella, cheddar, parmesan, and gouda cheese blend"), Rating: ptr(4.6)},
	{Name: "Spicy Mexican Pizza", Category: inventory.CategoryPizza, Quantity: 28, Price: 419, Threshold: ptr(10),
		Description: ptr("Jalapenos, onions, bell peppers with spicy sauce"), Rating: ptr(4.4)},
	{Name: "Mushroom Truffle Pizza", Category: inventory.CategoryPizza, Quantity: 25, Price: 549, Threshold: ptr(10),
		Description: ptr("Gourmet mushrooms with truffle oil and parmesan"), Rating: ptr(4.8)},
	{Name: "Garden Fresh Pizza", Category: inventory.CategoryPizza, Quantity: 30, Price: 329, Threshold: ptr(10),
		Description: ptr("Tomatoes, spinach, corn, and fresh herbs"), Rating: ptr(4.1)},

	// Pizza bases
	{Name: "Thin Crust", Category: inventory.CategoryBase, Quantity: 50, Price: 100, Threshold: ptr(20)},
	{Name: "Thick Crust", Category: inventory.CategoryBase, Quantity: 50, Price: 120, Threshold: ptr(20)},
	{Name: "Cheese Burst", Category: inventory.CategoryBase, Quantity: 40, Price: 150, Threshold: ptr(20)},
	{Name: "Whole Wheat", Category: inventory.CategoryBase, Quantity: 30, Price: 130, Threshold: ptr(20)},
	{Name: "Gluten Free", Category: inventory.CategoryBase, Quantity: 25, Price: 180, Threshold: ptr(20)},

	// Sauces
	{Name: "Marinara Sauce", Category: inventory.CategorySauce, Quantity: 60, Price: 30, Threshold: ptr(20)},
	{Name: "White Sauce", Category: inventory.CategorySauce, Quantity: 60, Price: 35, Threshold: ptr(20)},
	{Name: "Pesto Sauce", Category: inventory.CategorySauce, Quantity: 50, Price: 40, Threshold: ptr(20)},
	{Name: "BBQ Sauce", Category: inventory.CategorySauce, Quantity: 55, Price: 35, Threshold: ptr(20)},
	{Name: "Hot Sauce", Category: inventory.CategorySauce, Quantity: 45, Price: 30, Threshold: ptr(20)},

	// Cheese
	{Name: "Mozzarella", Category: inventory.CategoryCheese, Quantity: 80, Price: 50, Threshold: ptr(20)},
	{Name: "Cheddar", Category: inventory.CategoryCheese, Quantity: 70, Price: 55, Threshold: ptr(20)},
	{Name: "Parmesan", Category: inventory.CategoryCheese, Quantity: 60, Price: 60, Threshold: ptr(20)},
	{Name: "Feta", Category: inventory.CategoryCheese, Quantity: 50, Price: 65, Threshold: ptr(20)},
	{Name: "Gouda", Category: inventory.CategoryCheese, Quantity: 45, Price: 70, Threshold: ptr(20)},

	// Veggies
	{Name: "Onions", Category: inventory.CategoryVeggie, Quantity: 100, Price: 15, Threshold: ptr(30)},
	{Name: "Bell Peppers", Category: inventory.CategoryVeggie, Quantity: 100, Price: 20, Threshold: ptr(30)},
	{Name: "Mushrooms", Category: inventory.CategoryVeggie, Quantity: 90, Price: 25, Threshold: ptr(30)},
	{Name: "Tomatoes", Category: inventory.CategoryVeggie, Quantity: 100, Price: 15, Threshold: ptr(30)},
	{Name: "Olives", Category: inventory.CategoryVeggie, Quantity: 80, Price: 20, Threshold: ptr(30)},
	{Name: "Jalapenos", Category: inventory.CategoryVeggie, Quantity: 70, Price: 20, Threshold: ptr(30)},
	{Name: "Corn", Category: inventory.CategoryVeggie, Quantity: 85, Price: 15, Threshold: ptr(30)},
	{Name: "Spinach", Category: inventory.CategoryVeggie, Quantity: 75, Price: 20, Threshold: ptr(30)},

	// Meat
	{Name: "Pepperoni", Category: inventory.CategoryMeat, Quantity: 60, Price: 50, Threshold: ptr(20)},
	{Name: "Chicken", Category: inventory.CategoryMeat, Quantity: 55, Price: 45, Threshold: ptr(20)},
	{Name: "Bacon", Category: inventory.CategoryMeat, Quantity: 50, Price: 55, Threshold: ptr(20)},
	{Name: "Sausage", Category: inventory.CategoryMeat, Quantity: 50, Price: 50, Threshold: ptr(20)},
	{Name: "Ham", Category: inventory.CategoryMeat, Quantity: 45, Price: 45, Threshold: ptr(20)},
}

func main() {
	cfg := config.LoadConfig()
	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()

	// Clear existing data
	for _, table := range []string{"order_components", "orders", "inventory_items", "users"} {
		if _, err := database.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Existing data cleared")

	invRepo := inventory.NewRepository(database)
	for _, item := range catalogue {
		if _, err := invRepo.Create(ctx, item); err != nil {
			log.Fatalf("failed to seed item %q: %v", item.Name, err)
		}
	}
	fmt.Println("Inventory data seeded successfully")

	userRepo := user.NewRepository(database)

	seedUser := func(name, email, password, role string) {
		hash, err := user.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", email, err)
		}
		u := &user.User{Name: name, Email: email, PasswordHash: hash, Role: role}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("failed to create user %s: %v", email, err)
		}
		fmt.Printf("%s user created: %s\n", role, email)
	}

	seedUser("Admin", "admin@pizzaapp.com", "admin123", utils.RoleAdmin)
	seedUser("Test User", "user@test.com", "user123", utils.RoleUser)

	fmt.Println("Seed completed successfully")
}
