// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/auth"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

type FarmerHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	cat *catalog.Catalog
}

func NewFarmerHandler(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog) *FarmerHandler {
	return &FarmerHandler{db: db, cfg: cfg, cat: cat}
}

// requireFarmer validates the back-office access key. There is a single
// farmer role; no per-farmer accounts.
func (h *FarmerHandler) requireFarmer(w http.ResponseWriter, r *http.Request) bool {
	key := r.Header.Get(middleware.FarmerKeyHeader)
	if err := auth.ValidateFarmerKey(key, h.cfg.FarmerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid farmer key")
		return false
	}
	return true
}

// ListInventory handles GET /farmer/inventory
func (h *FarmerHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	rows, err := h.db.Query(`
		SELECT product_id, name, unit, stock, price, updated_at
		FROM inventory
		ORDER BY product_id
	`)
	if err != nil {
		slog.Error("failed to query inventory", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var it models.InventoryItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Unit, &it.Stock, &it.Price, &it.UpdatedAt); err != nil {
			slog.Error("failed to scan inventory item", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		items = append(items, it)
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// UpdateInventory handles PUT /farmer/inventory/{productID}
// Partial update of stock and/or price. Last write wins; there is no
// optimistic concurrency on inventory edits.
func (h *FarmerHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	var req models.UpdateInventoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Stock == nil && req.Price == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stock or price is required")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stock must be non-negative")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	productID := r.PathValue("productID")

	var it models.InventoryItem
	err := h.db.QueryRow(`
		SELECT product_id, name, unit, stock, price
		FROM inventory
		WHERE product_id = $1
	`, productID).Scan(&it.ProductID, &it.Name, &it.Unit, &it.Stock, &it.Price)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Inventory item not found")
		return
	}
	if err != nil {
		slog.Error("failed to query inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Stock != nil {
		it.Stock = *req.Stock
	}
	if req.Price != nil {
		it.Price = *req.Price
	}
	it.UpdatedAt = time.Now()

	_, err = h.db.Exec(`
		UPDATE inventory
		SET stock = $1, price = $2, updated_at = $3
		WHERE product_id = $4
	`, it.Stock, it.Price, it.UpdatedAt, productID)
	if err != nil {
		slog.Error("failed to update inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update inventory")
		return
	}

	slog.Info("inventory updated", "product_id", productID, "stock", it.Stock, "price", it.Price)

	middleware.JSONResponse(w, http.StatusOK, it)
}

// ListOrders handles GET /farmer/orders
// Optional ?location= filters to one delivery location.
func (h *FarmerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	orders, err := h.queryOrders(r.URL.Query().Get("location"))
	if err != nil {
		slog.Error("failed to query orders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, orders)
}

// ListOrdersByLocation handles GET /farmer/orders/by-location
// Groups open and delivered orders under their delivery location so packing
// runs can be prepared per dropoff.
func (h *FarmerHandler) ListOrdersByLocation(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	orders, err := h.queryOrders("")
	if err != nil {
		slog.Error("failed to query orders", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	grouped := map[string][]models.Order{}
	locations := []string{}
	for _, o := range orders {
		if _, seen := grouped[o.Location]; !seen {
			locations = append(locations, o.Location)
		}
		grouped[o.Location] = append(grouped[o.Location], o)
	}

	out := make([]models.OrdersByLocation, 0, len(locations))
	for _, loc := range locations {
		out = append(out, models.OrdersByLocation{Location: loc, Orders: grouped[loc]})
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

// AdvanceOrder handles POST /farmer/orders/{id}/advance
// Moves an order one step forward in the status flow. Delivered orders are
// terminal: advancing one is a conflict, and there is no way back.
func (h *FarmerHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	orderID := r.PathValue("id")

	var status string
	err := h.db.QueryRow(`SELECT status FROM farm_order WHERE id = $1`, orderID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.Error("failed to query order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	next := ""
	for i, s := range models.OrderStatusFlow {
		if s == status && i+1 < len(models.OrderStatusFlow) {
			next = models.OrderStatusFlow[i+1]
			break
		}
	}
	if next == "" {
		middleware.ErrorResponse(w, http.StatusConflict, "Order is already delivered")
		return
	}

	// Guard on the status read above so two racing advances cannot skip a step
	res, err := h.db.Exec(`
		UPDATE farm_order SET status = $1 WHERE id = $2 AND status = $3
	`, next, orderID, status)
	if err != nil {
		slog.Error("failed to advance order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to advance order")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Order status changed concurrently")
		return
	}

	slog.Info("order advanced", "order_id", orderID, "status", next)

	middleware.JSONResponse(w, http.StatusOK, models.AdvanceOrderResponse{
		OrderID: orderID,
		Status:  next,
	})
}

// ListLocations handles GET /farmer/locations
func (h *FarmerHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	if !h.requireFarmer(w, r) {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.cat.PickupLocations)
}

// queryOrders loads orders (optionally for one location) with their items.
func (h *FarmerHandler) queryOrders(location string) ([]models.Order, error) {
	query := `
		SELECT id, customer, location, status, total, placed_at
		FROM farm_order
	`
	args := []interface{}{}
	if location != "" {
		query += ` WHERE location = $1`
		args = append(args, location)
	}
	query += ` ORDER BY placed_at, id`

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Customer, &o.Location, &o.Status, &o.Total, &o.PlacedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		itemRows, err := h.db.Query(`
			SELECT order_id, product_id, name, quantity, line_total
			FROM order_item
			WHERE order_id = $1
			ORDER BY product_id
		`, orders[i].ID)
		if err != nil {
			return nil, err
		}
		for itemRows.Next() {
			var it models.OrderItem
			if err := itemRows.Scan(&it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.LineTotal); err != nil {
				itemRows.Close()
				return nil, err
			}
			orders[i].Items = append(orders[i].Items, it)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, err
		}
		itemRows.Close()
	}

	return orders, nil
}
