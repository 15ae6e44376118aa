// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cart holds per-session preview and committed basket state in
// memory. The store is an explicit, injectable container so tests can run
// isolated instances; there is no package-level singleton.
package cart

import (
	"math"
	"sync"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/pricing"
)

// Store owns the authoritative product → quantity mapping per session.
// Preview quantities (slider state) are kept separate from committed
// entries: a product can have a nonzero preview with no cart entry, and
// vice versa.
type Store struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	fee      float64
	sessions map[string]*session
}

type session struct {
	previews map[string]float64
	entries  map[string]float64
}

// NewStore creates a cart store over a catalog with a flat delivery fee.
func NewStore(cat *catalog.Catalog, deliveryFee float64) *Store {
	return &Store{
		cat:      cat,
		fee:      deliveryFee,
		sessions: make(map[string]*session),
	}
}

func (s *Store) session(token string) *session {
	sess, ok := s.sessions[token]
	if !ok {
		sess = &session{
			previews: make(map[string]float64),
			entries:  make(map[string]float64),
		}
		s.sessions[token] = sess
	}
	return sess
}

// normalize bounds a requested quantity to the product's valid range:
// [0, MaxMonthly], snapped to the slider step for flat products and
// truncated to an integer tier index for share products.
func normalize(p models.Product, quantity float64) float64 {
	if quantity < 0 {
		quantity = 0
	}
	if quantity > p.MaxMonthly {
		quantity = p.MaxMonthly
	}
	if p.IsShare() {
		return float64(pricing.ClampTier(p, int(quantity)))
	}
	step := p.Step()
	return math.Round(quantity/step) * step
}

// SetPreview records ephemeral slider state for a product. The committed
// cart is untouched. Unknown products are rejected.
func (s *Store) SetPreview(token, productID string, quantity float64) (float64, error) {
	p, err := s.cat.Product(productID)
	if err != nil {
		return 0, err
	}
	q := normalize(p, quantity)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(token).previews[productID] = q
	return q, nil
}

// Preview returns the current slider state for a product, 0 if untouched.
func (s *Store) Preview(token, productID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		return sess.previews[productID]
	}
	return 0
}

// Commit copies the product's preview quantity into the committed cart.
// A zero or absent preview is a no-op commit.
func (s *Store) Commit(token, productID string) (models.CartView, error) {
	if _, err := s.cat.Product(productID); err != nil {
		return models.CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(token)
	if q := sess.previews[productID]; q > 0 {
		sess.entries[productID] = q
	}
	return s.viewLocked(sess), nil
}

// Remove drops a committed entry. Removing an absent entry is a no-op.
func (s *Store) Remove(token, productID string) (models.CartView, error) {
	if _, err := s.cat.Product(productID); err != nil {
		return models.CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(token)
	delete(sess.entries, productID)
	return s.viewLocked(sess), nil
}

// Clear empties the committed cart, leaving previews intact.
func (s *Store) Clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		sess.entries = make(map[string]float64)
	}
}

// Entries returns the committed cart entries in catalog order.
func (s *Store) Entries(token string) []models.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return []models.CartEntry{}
	}
	out := []models.CartEntry{}
	for _, p := range s.cat.Products {
		if q, ok := sess.entries[p.ID]; ok {
			out = append(out, models.CartEntry{ProductID: p.ID, Quantity: q})
		}
	}
	return out
}

// View derives the priced cart: line totals, subtotal, delivery fee, total.
func (s *Store) View(token string) models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return pricing.CartTotals([]models.CartLine{}, s.fee)
	}
	return s.viewLocked(sess)
}

func (s *Store) viewLocked(sess *session) models.CartView {
	lines := []models.CartLine{}
	for _, p := range s.cat.Products {
		q, ok := sess.entries[p.ID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			Product:   p,
			Quantity:  q,
			LineTotal: pricing.LineTotal(p, q),
		})
	}
	return pricing.CartTotals(lines, s.fee)
}
