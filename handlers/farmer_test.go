// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/testutil"
)

func setupFarmerHandler(t *testing.T) (*FarmerHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cat := testutil.LoadTestCatalog(t)
	testutil.SeedBackOffice(t, conn, cat)
	return NewFarmerHandler(conn, testutil.GetTestConfig(), cat), conn
}

func farmerHeaders() map[string]string {
	return map[string]string{middleware.FarmerKeyHeader: testutil.FarmerKey()}
}

func TestFarmerEndpointsRequireKey(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	tests := []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"wrong key", "not-a-real-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers[middleware.FarmerKeyHeader] = tt.key
			}
			req := testutil.MakeRequest("GET", "/farmer/inventory", nil, headers)
			w := httptest.NewRecorder()
			handler.ListInventory(w, req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestListInventory(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	req := testutil.MakeRequest("GET", "/farmer/inventory", nil, farmerHeaders())
	w := httptest.NewRecorder()
	handler.ListInventory(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var items []models.InventoryItem
	testutil.AssertJSON(t, w, &items)
	if len(items) == 0 {
		t.Fatal("expected seeded inventory items")
	}
	for _, it := range items {
		if it.Stock < 0 {
			t.Errorf("item %s has negative stock %v", it.ProductID, it.Stock)
		}
	}
}

func TestUpdateInventory(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	stock := 42.0
	req := testutil.MakeRequest("PUT", "/farmer/inventory/eggs-dozen",
		models.UpdateInventoryRequest{Stock: &stock}, farmerHeaders())
	req.SetPathValue("productID", "eggs-dozen")
	w := httptest.NewRecorder()
	handler.UpdateInventory(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var it models.InventoryItem
	testutil.AssertJSON(t, w, &it)
	if it.Stock != 42 {
		t.Errorf("stock = %v, want 42", it.Stock)
	}
	// Price untouched by a stock-only update
	if it.Price != 8.99 {
		t.Errorf("price = %v, want 8.99", it.Price)
	}
}

func TestUpdateInventoryValidation(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	negative := -5.0
	stock := 10.0

	tests := []struct {
		name       string
		productID  string
		body       models.UpdateInventoryRequest
		wantStatus int
	}{
		{"empty update", "eggs-dozen", models.UpdateInventoryRequest{}, http.StatusBadRequest},
		{"negative stock", "eggs-dozen", models.UpdateInventoryRequest{Stock: &negative}, http.StatusBadRequest},
		{"negative price", "eggs-dozen", models.UpdateInventoryRequest{Price: &negative}, http.StatusBadRequest},
		{"unknown product", "no-such", models.UpdateInventoryRequest{Stock: &stock}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/farmer/inventory/"+tt.productID, tt.body, farmerHeaders())
			req.SetPathValue("productID", tt.productID)
			w := httptest.NewRecorder()
			handler.UpdateInventory(w, req)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestListOrders(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	req := testutil.MakeRequest("GET", "/farmer/orders", nil, farmerHeaders())
	w := httptest.NewRecorder()
	handler.ListOrders(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var orders []models.Order
	testutil.AssertJSON(t, w, &orders)
	if len(orders) != 4 {
		t.Fatalf("got %d orders, want 4", len(orders))
	}
	for _, o := range orders {
		if len(o.Items) == 0 {
			t.Errorf("order %s has no items", o.ID)
		}
	}
}

func TestListOrdersByLocationFilter(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	req := testutil.MakeRequest("GET", "/farmer/orders?location=mueller", nil, farmerHeaders())
	w := httptest.NewRecorder()
	handler.ListOrders(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var orders []models.Order
	testutil.AssertJSON(t, w, &orders)
	if len(orders) != 2 {
		t.Fatalf("got %d mueller orders, want 2", len(orders))
	}
	for _, o := range orders {
		if o.Location != "mueller" {
			t.Errorf("order %s at location %s", o.ID, o.Location)
		}
	}
}

func TestListOrdersGrouped(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	req := testutil.MakeRequest("GET", "/farmer/orders/by-location", nil, farmerHeaders())
	w := httptest.NewRecorder()
	handler.ListOrdersByLocation(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var groups []models.OrdersByLocation
	testutil.AssertJSON(t, w, &groups)
	if len(groups) != 3 {
		t.Fatalf("got %d location groups, want 3", len(groups))
	}

	total := 0
	for _, g := range groups {
		total += len(g.Orders)
		for _, o := range g.Orders {
			if o.Location != g.Location {
				t.Errorf("order %s grouped under %s but located at %s", o.ID, g.Location, o.Location)
			}
		}
	}
	if total != 4 {
		t.Errorf("grouped orders total %d, want 4", total)
	}
}

func TestAdvanceOrder(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	advance := func(orderID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/farmer/orders/"+orderID+"/advance", nil, farmerHeaders())
		req.SetPathValue("id", orderID)
		w := httptest.NewRecorder()
		handler.AdvanceOrder(w, req)
		return w
	}

	// ord-1001 starts pending; walk it through the whole flow
	for _, want := range []string{models.StatusPrepared, models.StatusReady, models.StatusDelivered} {
		w := advance("ord-1001")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.AdvanceOrderResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != want {
			t.Fatalf("status = %s, want %s", resp.Status, want)
		}
	}

	// Delivered is terminal
	testutil.AssertStatus(t, advance("ord-1001"), http.StatusConflict)
	testutil.AssertStatus(t, advance("ord-1004"), http.StatusConflict)

	// Unknown order
	testutil.AssertStatus(t, advance("ord-9999"), http.StatusNotFound)
}

func TestListLocations(t *testing.T) {
	handler, _ := setupFarmerHandler(t)

	req := testutil.MakeRequest("GET", "/farmer/locations", nil, farmerHeaders())
	w := httptest.NewRecorder()
	handler.ListLocations(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var locations []models.PickupLocation
	testutil.AssertJSON(t, w, &locations)
	if len(locations) != 3 {
		t.Errorf("got %d locations, want 3", len(locations))
	}
}
