// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cart"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/referral"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/testutil"
)

func setupDashboardHandler(t *testing.T) (*DashboardHandler, *cart.Store, string) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cat := testutil.LoadTestCatalog(t)
	carts := cart.NewStore(cat, cfg.DeliveryFee)
	referrals := referral.New(conn, cfg.ReferralPrefix)
	token := testutil.CreateTestSession(t, conn)
	return NewDashboardHandler(conn, cfg, cat, carts, referrals), carts, token
}

func TestGetDashboard(t *testing.T) {
	handler, carts, token := setupDashboardHandler(t)

	if _, err := carts.SetPreview(token, "veggie-box", 2); err != nil {
		t.Fatalf("SetPreview: %v", err)
	}
	if _, err := carts.Commit(token, "veggie-box"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	req := testutil.MakeRequest("GET", "/dashboard", nil, sessionHeaders(token))
	w := httptest.NewRecorder()
	handler.GetDashboard(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DashboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Cart.Lines) != 1 {
		t.Errorf("dashboard cart has %d lines, want 1", len(resp.Cart.Lines))
	}
	if len(resp.PickupSchedule) != 3 {
		t.Errorf("pickup schedule has %d locations, want 3", len(resp.PickupSchedule))
	}
	if resp.Referral.ReferralCode != nil {
		t.Errorf("fresh session referral code = %v, want null", *resp.Referral.ReferralCode)
	}
}

func TestSupportAndSuggestAck(t *testing.T) {
	handler, _, token := setupDashboardHandler(t)

	req := testutil.MakeRequest("POST", "/support",
		models.SupportRequest{Subject: "Delivery", Message: "Can I switch pickup day?"},
		sessionHeaders(token))
	w := httptest.NewRecorder()
	handler.Support(w, req)
	testutil.AssertStatus(t, w, http.StatusAccepted)

	req = testutil.MakeRequest("POST", "/suggestions",
		models.SuggestionRequest{Message: "Please add goat cheese"}, sessionHeaders(token))
	w = httptest.NewRecorder()
	handler.Suggest(w, req)
	testutil.AssertStatus(t, w, http.StatusAccepted)
}

func TestSupportRequiresMessage(t *testing.T) {
	handler, _, token := setupDashboardHandler(t)

	req := testutil.MakeRequest("POST", "/support",
		models.SupportRequest{Subject: "Empty"}, sessionHeaders(token))
	w := httptest.NewRecorder()
	handler.Support(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	req = testutil.MakeRequest("POST", "/suggestions",
		models.SuggestionRequest{}, sessionHeaders(token))
	w = httptest.NewRecorder()
	handler.Suggest(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
