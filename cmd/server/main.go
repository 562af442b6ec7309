package main

import (
	"log"
	"net/http"
	"time"

	"pizzeria-be/internal/alert"
	"pizzeria-be/internal/config"
	"pizzeria-be/internal/db"
	"pizzeria-be/internal/inventory"
	"pizzeria-be/internal/logger"
	"pizzeria-be/internal/middleware"
	"pizzeria-be/internal/notify"
	"pizzeria-be/internal/order"
	"pizzeria-be/internal/payment"
	"pizzeria-be/internal/user"
	"pizzeria-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	alerter := alert.NewMailAlerter(alert.MailConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUser,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPUser,
		AdminEmail: cfg.AdminEmail,
	})

	hub := notify.NewHub()

	invRepo := inventory.NewRepository(database)
	invSvc := inventory.NewService(invRepo, alerter)
	invHandler := inventory.NewHandler(invSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, invSvc, hub)
	orderHandler := order.NewHandler(orderSvc)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	payHandler := payment.NewHandler(payment.NewGooglePayGateway())

	sweep := alert.NewSweep(invRepo, alerter, cfg.StockCronSpec)
	if err := sweep.Start(); err != nil {
		log.Fatalf("failed to schedule low stock sweep: %v", err)
	}
	defer sweep.Stop()

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(middleware.RequireAuth).Get("/me", userHandler.Me)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", invHandler.List)
			r.Get("/category/{category}", invHandler.ListByCategory)
			r.With(middleware.RequireAdmin).Get("/low-stock", invHandler.LowStock)
			r.With(middleware.RequireAuth).Post("/update-stock", invHandler.UpdateStock)
			r.Get("/{id}", invHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", invHandler.Create)
				r.Put("/{id}", invHandler.Update)
				r.Delete("/{id}", invHandler.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/", orderHandler.Create)
			r.With(middleware.RequireAdmin).Get("/", orderHandler.ListAll)
			r.Get("/my-orders", orderHandler.MyOrders)
			r.Post("/calculate-price", orderHandler.CalculatePrice)
			r.Post("/create-googlepay-order", payHandler.Authorize)
			r.Get("/{id}", orderHandler.Get)
			r.With(middleware.RequireAdmin).Put("/{id}/status", orderHandler.UpdateStatus)
		})
	})

	r.With(middleware.RequireAuth).Get("/ws", hub.ServeWS)

	log.Printf("Pizza storefront API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, r))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Server is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
