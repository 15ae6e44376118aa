// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cart"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

type CartHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	cat   *catalog.Catalog
	carts *cart.Store
}

func NewCartHandler(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog, carts *cart.Store) *CartHandler {
	return &CartHandler{db: db, cfg: cfg, cat: cat, carts: carts}
}

// SetPreview handles PUT /cart/preview/{productID}
// Records slider state without touching the committed cart. The server
// clamps the quantity to the product's range and step.
func (h *CartHandler) SetPreview(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	var req models.SetPreviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	productID := r.PathValue("productID")
	quantity, err := h.carts.SetPreview(token, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to set preview", "product_id", productID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update preview")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CartEntry{
		ProductID: productID,
		Quantity:  quantity,
	})
}

// CommitItem handles POST /cart/items/{productID}
// Copies the product's preview quantity into the committed cart. A zero
// preview is a no-op commit.
func (h *CartHandler) CommitItem(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	productID := r.PathValue("productID")
	view, err := h.carts.Commit(token, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to commit cart item", "product_id", productID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	slog.Info("cart item committed", "product_id", productID)
	middleware.JSONResponse(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	productID := r.PathValue("productID")
	view, err := h.carts.Remove(token, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to remove cart item", "product_id", productID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetCart handles GET /cart
// Returns line totals, subtotal, delivery fee, and monthly total.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.carts.View(token))
}

// Checkout handles POST /cart/checkout
// Builds the order summary (priced cart + pickup location + billing echo).
// Nothing is persisted - payment and order placement are outside this
// service, so the summary is logged and returned.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.BillingName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "billing_name is required")
		return
	}

	location, err := h.cat.PickupLocation(req.PickupLocationID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown pickup location")
		return
	}

	view := h.carts.View(token)
	if len(view.Lines) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	slog.Info("checkout summary requested",
		"items", len(view.Lines),
		"total", view.Total,
		"pickup_location", location.ID,
	)

	middleware.JSONResponse(w, http.StatusOK, models.CheckoutResponse{
		Cart:           view,
		PickupLocation: location,
		BillingName:    req.BillingName,
		BillingEmail:   req.BillingEmail,
	})
}
