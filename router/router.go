// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cart"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/handlers"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/referral"
)

// notFoundWriter rewrites ServeMux's plain-text no-match 404 into the API's
// JSON error envelope. Handler-written 404s already carry a JSON content type
// and pass through untouched, as do ServeMux's 405 and redirect responses.
type notFoundWriter struct {
	http.ResponseWriter
	rewrote bool
}

func (w *notFoundWriter) WriteHeader(code int) {
	if code == http.StatusNotFound && w.Header().Get("Content-Type") != "application/json" {
		w.rewrote = true
		middleware.ErrorResponse(w.ResponseWriter, http.StatusNotFound, "Not found")
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *notFoundWriter) Write(b []byte) (int, error) {
	if w.rewrote {
		// Swallow the stdlib "404 page not found" body
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func NewRouter(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog) http.Handler {
	mux := http.NewServeMux()

	// Shared stores, one instance per server
	carts := cart.NewStore(cat, cfg.DeliveryFee)
	referrals := referral.New(db, cfg.ReferralPrefix)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg, referrals)
	catalogHandler := handlers.NewCatalogHandler(cat, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg, cat, carts)
	referralHandler := handlers.NewReferralHandler(db, cfg, referrals)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg, cat, carts, referrals)
	farmerHandler := handlers.NewFarmerHandler(db, cfg, cat)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.Create))

	// Storefront catalog (public)
	mux.HandleFunc("GET /products", middleware.WithLogging(catalogHandler.ListProducts))
	mux.HandleFunc("GET /products/{id}", middleware.WithLogging(catalogHandler.GetProduct))
	mux.HandleFunc("GET /products/{id}/breakdown", middleware.WithLogging(catalogHandler.GetBreakdown))
	mux.HandleFunc("GET /categories", middleware.WithLogging(catalogHandler.ListCategories))
	mux.HandleFunc("GET /categories/{id}/progress", middleware.WithLogging(catalogHandler.GetCategoryProgress))

	// Cart (session-scoped)
	mux.HandleFunc("PUT /cart/preview/{productID}", middleware.WithLogging(cartHandler.SetPreview))
	mux.HandleFunc("POST /cart/items/{productID}", middleware.WithLogging(cartHandler.CommitItem))
	mux.HandleFunc("DELETE /cart/items/{productID}", middleware.WithLogging(cartHandler.RemoveItem))
	mux.HandleFunc("GET /cart", middleware.WithLogging(cartHandler.GetCart))
	mux.HandleFunc("POST /cart/checkout", middleware.WithLogging(cartHandler.Checkout))

	// Referral program (session-scoped)
	mux.HandleFunc("POST /referral/code", middleware.WithLogging(referralHandler.GenerateCode))
	mux.HandleFunc("GET /referral", middleware.WithLogging(referralHandler.GetState))
	mux.HandleFunc("POST /referral/track", middleware.WithLogging(referralHandler.Track))
	mux.HandleFunc("POST /referral/earnings", middleware.WithLogging(referralHandler.AddEarnings))

	// Customer dashboard
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(dashboardHandler.GetDashboard))
	mux.HandleFunc("POST /support", middleware.WithLogging(dashboardHandler.Support))
	mux.HandleFunc("POST /suggestions", middleware.WithLogging(dashboardHandler.Suggest))

	// Farmer back-office (keyed)
	mux.HandleFunc("GET /farmer/inventory", middleware.WithLogging(farmerHandler.ListInventory))
	mux.HandleFunc("PUT /farmer/inventory/{productID}", middleware.WithLogging(farmerHandler.UpdateInventory))
	mux.HandleFunc("GET /farmer/orders", middleware.WithLogging(farmerHandler.ListOrders))
	mux.HandleFunc("GET /farmer/orders/by-location", middleware.WithLogging(farmerHandler.ListOrdersByLocation))
	mux.HandleFunc("POST /farmer/orders/{id}/advance", middleware.WithLogging(farmerHandler.AdvanceOrder))
	mux.HandleFunc("GET /farmer/locations", middleware.WithLogging(farmerHandler.ListLocations))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("crowdharvest API v1"))
	})

	// No method-less catch-all: ServeMux keeps its 405 handling for wrong
	// methods on registered routes, and the wrapper below turns its
	// plain-text no-match 404 into the JSON envelope.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(&notFoundWriter{ResponseWriter: w}, r)
	})
}
