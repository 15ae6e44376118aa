// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/testutil"
)

func TestListProducts(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/products", nil, nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var products []models.Product
	testutil.AssertJSON(t, w, &products)
	if len(products) != len(cat.Products) {
		t.Errorf("got %d products, want %d", len(products), len(cat.Products))
	}
}

func TestListProductsByCategory(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/products?category=poultry", nil, nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var products []models.Product
	testutil.AssertJSON(t, w, &products)
	for _, p := range products {
		if p.Category != "poultry" {
			t.Errorf("product %s has category %s", p.ID, p.Category)
		}
	}

	// Unknown category is a 404
	req = testutil.MakeRequest("GET", "/products?category=seafood", nil, nil)
	w = httptest.NewRecorder()
	handler.ListProducts(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetProduct(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/products/beef-share", nil, nil)
	req.SetPathValue("id", "beef-share")
	w := httptest.NewRecorder()
	handler.GetProduct(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var p models.Product
	testutil.AssertJSON(t, w, &p)
	if p.ID != "beef-share" {
		t.Errorf("product id = %s, want beef-share", p.ID)
	}

	req = testutil.MakeRequest("GET", "/products/no-such", nil, nil)
	req.SetPathValue("id", "no-such")
	w = httptest.NewRecorder()
	handler.GetProduct(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetBreakdown(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	tests := []struct {
		name       string
		productID  string
		query      string
		wantStatus int
		wantLabel  string
		wantPrice  float64
	}{
		{"beef tier 3", "beef-share", "?tier=3", http.StatusOK, "1/15 share", 336},
		{"lamb tier 2", "lamb-share", "?tier=2", http.StatusOK, "1/4 share", 180},
		{"tier defaults to 0", "beef-share", "", http.StatusOK, "No share", 0},
		{"tier clamps", "lamb-share", "?tier=50", http.StatusOK, "1/2 share", 360},
		{"flat product rejected", "eggs-dozen", "?tier=1", http.StatusBadRequest, "", 0},
		{"bad tier rejected", "beef-share", "?tier=abc", http.StatusBadRequest, "", 0},
		{"unknown product", "no-such", "?tier=1", http.StatusNotFound, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/products/"+tt.productID+"/breakdown"+tt.query, nil, nil)
			req.SetPathValue("id", tt.productID)
			w := httptest.NewRecorder()
			handler.GetBreakdown(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var sb models.ShareBreakdown
			testutil.AssertJSON(t, w, &sb)
			if sb.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", sb.Label, tt.wantLabel)
			}
			if sb.MonthlyPrice != tt.wantPrice {
				t.Errorf("monthly price = %v, want %v", sb.MonthlyPrice, tt.wantPrice)
			}
		})
	}
}

func TestListCategories(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/categories", nil, nil)
	w := httptest.NewRecorder()
	handler.ListCategories(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var categories []struct {
		models.Category
		Progress *models.ProgressView `json:"community_progress"`
		Farmers  []models.Farmer      `json:"farmers"`
	}
	testutil.AssertJSON(t, w, &categories)

	if len(categories) != len(cat.Categories) {
		t.Fatalf("got %d categories, want %d", len(categories), len(cat.Categories))
	}
	withProgress := 0
	for _, cv := range categories {
		if cv.Progress == nil {
			continue
		}
		withProgress++
		if cv.Progress.Percentage < 0 || cv.Progress.Percentage > 100 {
			t.Errorf("category %s percentage %v outside [0, 100]", cv.ID, cv.Progress.Percentage)
		}
	}
	if withProgress == 0 {
		t.Error("no category carried a community progress projection")
	}
}

func TestGetCategoryProgress(t *testing.T) {
	cat := testutil.LoadTestCatalog(t)
	handler := NewCatalogHandler(cat, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/categories/beef/progress", nil, nil)
	req.SetPathValue("id", "beef")
	w := httptest.NewRecorder()
	handler.GetCategoryProgress(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var pv models.ProgressView
	testutil.AssertJSON(t, w, &pv)
	// Seed data: 150 of 300 lbs committed, 128 subscribers
	if pv.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", pv.Percentage)
	}
	if pv.Remaining != 150 {
		t.Errorf("remaining = %v, want 150", pv.Remaining)
	}
	if pv.Subscribers != 64 {
		t.Errorf("subscribers = %d, want 64", pv.Subscribers)
	}

	req = testutil.MakeRequest("GET", "/categories/seafood/progress", nil, nil)
	req.SetPathValue("id", "seafood")
	w = httptest.NewRecorder()
	handler.GetCategoryProgress(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
