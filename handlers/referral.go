// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/referral"
)

type ReferralHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	referrals *referral.Store
}

func NewReferralHandler(db *sql.DB, cfg cliparse.Config, referrals *referral.Store) *ReferralHandler {
	return &ReferralHandler{db: db, cfg: cfg, referrals: referrals}
}

// GenerateCode handles POST /referral/code
// Idempotent: repeat calls return the same stored code.
func (h *ReferralHandler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	code, err := h.referrals.GenerateCode(token)
	if err != nil {
		slog.Error("failed to generate referral code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate referral code")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GenerateCodeResponse{
		ReferralCode: code,
	})
}

// GetState handles GET /referral
func (h *ReferralHandler) GetState(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	state, err := h.referrals.State(token)
	if err != nil {
		slog.Error("failed to load referral state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load referral state")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}

// Track handles POST /referral/track
// Counts at most one referral per referred customer id.
func (h *ReferralHandler) Track(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	var req models.TrackReferralRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	total, counted, err := h.referrals.Track(token, req.ReferredID)
	if err != nil {
		if errors.Is(err, referral.ErrMissingReferredID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "referred_id is required")
			return
		}
		slog.Error("failed to track referral", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to track referral")
		return
	}

	if counted {
		slog.Info("referral tracked", "total_referrals", total)
	}

	middleware.JSONResponse(w, http.StatusOK, models.TrackReferralResponse{
		TotalReferrals: total,
		Counted:        counted,
	})
}

// AddEarnings handles POST /referral/earnings
func (h *ReferralHandler) AddEarnings(w http.ResponseWriter, r *http.Request) {
	token, ok := requireSession(h.db, w, r)
	if !ok {
		return
	}

	var req models.AddEarningsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	earnings, err := h.referrals.AddEarnings(token, req.Amount)
	if err != nil {
		if errors.Is(err, referral.ErrNegativeAmount) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be non-negative")
			return
		}
		slog.Error("failed to add referral earnings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add earnings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AddEarningsResponse{
		ReferralEarnings: earnings,
	})
}
