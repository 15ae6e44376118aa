// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cart"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/referral"
)

type DashboardHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	cat       *catalog.Catalog
	carts     *cart.Store
	referrals *referral.Store
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config, cat *catalog.Catalog, carts *cart.Store, referrals *referral.Store) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg, cat: cat, carts: carts, referrals: referrals}
}

// GetDashboard handles GET /dashboard
// Subscription overview (the priced cart), the pickup schedule, and the
// session's referral state in one response.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	state, err := h.referrals.State(token)
	if err != nil {
		slog.Error("failed to load referral state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Cart:           h.carts.View(token),
		PickupSchedule: h.cat.PickupLocations,
		Referral:       state,
	})
}

// Support handles POST /support
// No ticketing backend exists; the request is validated, logged, and
// acknowledged.
func (h *DashboardHandler) Support(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(h.db, w, r); !ok {
		return
	}

	var req models.SupportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	slog.Info("support request received", "subject", req.Subject)

	middleware.JSONResponse(w, http.StatusAccepted, models.AckResponse{
		Message: "Support request received",
	})
}

// Suggest handles POST /suggestions
// Same stub treatment as Support.
func (h *DashboardHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(h.db, w, r); !ok {
		return
	}

	var req models.SuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	slog.Info("product suggestion received")

	middleware.JSONResponse(w, http.StatusAccepted, models.AckResponse{
		Message: "Suggestion received",
	})
}
