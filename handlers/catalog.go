// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/middleware"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/pricing"
)

type CatalogHandler struct {
	cat *catalog.Catalog
	cfg cliparse.Config
}

func NewCatalogHandler(cat *catalog.Catalog, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{cat: cat, cfg: cfg}
}

// ListProducts handles GET /products
// Optional ?category= filters to one category (404 for unknown categories).
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		middleware.JSONResponse(w, http.StatusOK, h.cat.Products)
		return
	}

	if _, err := h.cat.Category(category); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.cat.ProductsByCategory(category))
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.cat.Product(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// GetBreakdown handles GET /products/{id}/breakdown?tier=N
// Returns the monthly price and estimated per-cut amounts for a share tier.
// Out-of-range tiers are clamped, not rejected.
func (h *CatalogHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	p, err := h.cat.Product(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}

	tier := 0
	if tierStr := r.URL.Query().Get("tier"); tierStr != "" {
		tier, err = strconv.Atoi(tierStr)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "tier must be an integer")
			return
		}
	}

	breakdown, ok := pricing.ShareBreakdownAt(p, tier)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Product is not share-based")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, breakdown)
}

// categoryView bundles a category with its progress projection and farmers.
type categoryView struct {
	models.Category
	Progress *models.ProgressView `json:"community_progress,omitempty"`
	Farmers  []models.Farmer      `json:"farmers"`
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryView, 0, len(h.cat.Categories))
	for _, cat := range h.cat.Categories {
		view := categoryView{
			Category: cat,
			Farmers:  h.cat.FarmersForCategory(cat.ID),
		}
		if cm, err := h.cat.Progress(cat.ID); err == nil {
			pv := pricing.ProjectProgress(cm, h.cat.TotalSubscribers)
			view.Progress = &pv
		}
		out = append(out, view)
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// GetCategoryProgress handles GET /categories/{id}/progress
func (h *CatalogHandler) GetCategoryProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cm, err := h.cat.Progress(id)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load progress")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pricing.ProjectProgress(cm, h.cat.TotalSubscribers))
}
