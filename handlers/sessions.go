// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/auth"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/referral"
)

type SessionHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	referrals *referral.Store
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config, referrals *referral.Store) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg, referrals: referrals}
}

// Create handles POST /sessions
// Issues a shopper session token and captures an incoming ?ref= referral
// marker when present.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO session (token) VALUES ($1)
	`, token)
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	if ref := r.URL.Query().Get("ref"); ref != "" {
		if err := h.referrals.CaptureIncoming(token, ref); err != nil {
			slog.Error("failed to capture incoming referral", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
		slog.Info("incoming referral captured", "ref", ref)
	}

	slog.Info("session created", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionToken: token,
	})
}

// requireSession resolves the shopper session token from the request and
// verifies it was issued. Writes the error response itself; callers bail
// out when ok is false.
func requireSession(db *sql.DB, w http.ResponseWriter, r *http.Request) (token string, ok bool) {
	token = middleware.SessionToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.SessionHeader+" header required")
		return "", false
	}

	var exists string
	err := db.QueryRow(`SELECT token FROM session WHERE token = $1`, token).Scan(&exists)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown session")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}

	return token, true
}
