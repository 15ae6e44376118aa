// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
)

const token = "test-session"

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewStore(cat, 5.99)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSetPreviewClamps(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name      string
		productID string
		quantity  float64
		want      float64
	}{
		{"in range", "eggs-dozen", 3, 3},
		{"negative clamps to zero", "eggs-dozen", -2, 0},
		{"over max clamps to max", "eggs-dozen", 50, 8},
		{"share tier truncates to index", "beef-share", 3.9, 3},
		{"share tier over top clamps", "beef-share", 12, 6},
		{"half step snaps", "raw-milk", 2.4, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SetPreview(token, tt.productID, tt.quantity)
			if err != nil {
				t.Fatalf("SetPreview() error = %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("SetPreview(%v) = %v, want %v", tt.quantity, got, tt.want)
			}
		})
	}
}

func TestSetPreviewUnknownProduct(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SetPreview(token, "no-such-product", 1)
	if !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Errorf("SetPreview() error = %v, want ErrUnknownProduct", err)
	}
}

func TestPreviewSeparateFromCart(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SetPreview(token, "eggs-dozen", 4); err != nil {
		t.Fatal(err)
	}

	// Preview set, nothing committed
	if got := s.Preview(token, "eggs-dozen"); !approx(got, 4) {
		t.Errorf("Preview() = %v, want 4", got)
	}
	if entries := s.Entries(token); len(entries) != 0 {
		t.Errorf("Entries() = %d before commit, want 0", len(entries))
	}
}

func TestCommit(t *testing.T) {
	s := newTestStore(t)

	s.SetPreview(token, "eggs-dozen", 2)
	view, err := s.Commit(token, "eggs-dozen")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(view.Lines))
	}
	if !approx(view.Lines[0].LineTotal, 17.98) {
		t.Errorf("LineTotal = %v, want 17.98", view.Lines[0].LineTotal)
	}
	if !approx(view.Total, 17.98+5.99) {
		t.Errorf("Total = %v, want %v", view.Total, 17.98+5.99)
	}
}

func TestCommitZeroPreviewIsNoop(t *testing.T) {
	s := newTestStore(t)

	view, err := s.Commit(token, "eggs-dozen")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("zero-preview commit added %d lines", len(view.Lines))
	}

	// Explicit zero preview behaves the same
	s.SetPreview(token, "eggs-dozen", 0)
	view, _ = s.Commit(token, "eggs-dozen")
	if len(view.Lines) != 0 {
		t.Errorf("zero-preview commit added %d lines", len(view.Lines))
	}
}

func TestCommitUnknownProduct(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Commit(token, "no-such-product")
	if !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Errorf("Commit() error = %v, want ErrUnknownProduct", err)
	}
}

func TestShareLineTotals(t *testing.T) {
	s := newTestStore(t)

	// Tier 3 of the beef share: 24 × $14 = $336/month
	s.SetPreview(token, "beef-share", 3)
	view, err := s.Commit(token, "beef-share")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(view.Lines[0].LineTotal, 336) {
		t.Errorf("share LineTotal = %v, want 336", view.Lines[0].LineTotal)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	s.SetPreview(token, "eggs-dozen", 2)
	s.Commit(token, "eggs-dozen")

	view, err := s.Remove(token, "eggs-dozen")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("cart has %d lines after remove, want 0", len(view.Lines))
	}

	// Removing again is a no-op
	if _, err := s.Remove(token, "eggs-dozen"); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestClearKeepsPreviews(t *testing.T) {
	s := newTestStore(t)

	s.SetPreview(token, "eggs-dozen", 2)
	s.Commit(token, "eggs-dozen")
	s.Clear(token)

	if entries := s.Entries(token); len(entries) != 0 {
		t.Errorf("Entries() = %d after clear, want 0", len(entries))
	}
	if got := s.Preview(token, "eggs-dozen"); !approx(got, 2) {
		t.Errorf("Preview() = %v after clear, want 2", got)
	}
}

func TestSessionsIsolated(t *testing.T) {
	s := newTestStore(t)

	s.SetPreview("session-a", "eggs-dozen", 2)
	s.Commit("session-a", "eggs-dozen")

	if view := s.View("session-b"); len(view.Lines) != 0 {
		t.Errorf("session-b sees %d lines from session-a", len(view.Lines))
	}
}

func TestViewCatalogOrder(t *testing.T) {
	s := newTestStore(t)

	// Commit in reverse catalog order; view should come back in catalog order
	s.SetPreview(token, "veggie-box", 1)
	s.Commit(token, "veggie-box")
	s.SetPreview(token, "beef-share", 2)
	s.Commit(token, "beef-share")

	view := s.View(token)
	if len(view.Lines) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(view.Lines))
	}
	if view.Lines[0].Product.ID != "beef-share" {
		t.Errorf("first line = %s, want beef-share", view.Lines[0].Product.ID)
	}
}
