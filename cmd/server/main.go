package main

import (
	"fmt"
	"log"
	"net/http"

	"organizer-dashboard/internal/config"
	"organizer-dashboard/internal/handlers"
	"organizer-dashboard/internal/middleware"
	"organizer-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))

	// Configure session options
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
	}

	// Initialize ticketing API client. The per-request token is taken
	// from the request context, where the session middleware puts it.
	ticketing := services.NewTicketingClient(services.TicketingConfig{
		BaseURL: cfg.Ticketing.BaseURL,
		Timeout: cfg.Ticketing.Timeout,
	}, &services.ContextTokenProvider{})

	// Initialize services
	orderService := services.NewOrderService(ticketing)
	checkinService := services.NewCheckinService(ticketing)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(ticketing, sessionStore)
	eventHandler := handlers.NewEventHandler(ticketing)
	sellHandler := handlers.NewSellHandler(ticketing, orderService, sessionStore)
	checkinHandler := handlers.NewCheckinHandler(ticketing, checkinService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(chimiddleware.Compress(5))
	r.Use(authMiddleware.LoadToken)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Get("/dashboard", eventHandler.Dashboard)
				r.Get("/ticket-types", eventHandler.ListTicketTypes)
				r.Post("/ticket-types", eventHandler.CreateTicketType)

				r.Get("/sell", sellHandler.SellPage)
				r.Post("/sell/cart", sellHandler.UpdateCart)
				r.Get("/sell/checkout", sellHandler.CheckoutPreview)
				r.Post("/sell/checkout", sellHandler.ProcessCheckout)

				r.Get("/checkin", checkinHandler.Roster)
			})
		})

		r.Post("/api/checkin/{code}", checkinHandler.CheckIn)

		r.Route("/api/sales/{saleID}", func(r chi.Router) {
			r.Get("/qrcode.png", checkinHandler.QRCode)
			r.Put("/cancel", checkinHandler.CancelSale)
			r.Post("/resend", checkinHandler.ResendEmail)
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Printf("Ticketing API: %s", cfg.Ticketing.BaseURL)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
