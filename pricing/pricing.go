// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pricing computes share-tier prices, cart totals, community
// progress projections, and per-cut share breakdowns.
package pricing

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

// ClampTier bounds a share tier index to the product's option range.
// Invalid indices are clamped, never rejected. Flat products (no share
// options) always clamp to 0 so the result is a safe index regardless.
func ClampTier(p models.Product, tier int) int {
	max := len(p.ShareOptions) - 1
	if tier < 0 || max < 0 {
		return 0
	}
	if tier > max {
		return max
	}
	return tier
}

// MonthlyPrice computes the monthly price for a share product at a tier:
// the tier's price multiplier times the per-pound base price.
func MonthlyPrice(p models.Product, tier int) float64 {
	if !p.IsShare() {
		return 0
	}
	return p.ShareOptions[ClampTier(p, tier)].PriceMultiplier * p.Price
}

// LineTotal computes a committed line's monthly cost. Share products treat
// quantity as a tier index; flat products multiply quantity by unit price.
// Always ≥ 0 and deterministic for a given product and quantity.
func LineTotal(p models.Product, quantity float64) float64 {
	if quantity < 0 {
		quantity = 0
	}
	if p.IsShare() {
		return MonthlyPrice(p, int(quantity))
	}
	return quantity * p.Price
}

// CartTotals sums line totals and applies the flat delivery fee. No tax, no
// rounding beyond two-decimal display formatting at the edge.
func CartTotals(lines []models.CartLine, deliveryFee float64) models.CartView {
	view := models.CartView{
		Lines:       lines,
		DeliveryFee: deliveryFee,
	}
	for _, line := range lines {
		view.Subtotal += line.LineTotal
	}
	view.Total = view.Subtotal + deliveryFee
	return view
}

// Percentage is the clamped completion percentage of a community commitment.
// Never below 0 or above 100, even when current exceeds target.
func Percentage(current, target float64) float64 {
	if target <= 0 || current <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Remaining is the amount left until a commitment is sold out, clamped at 0.
func Remaining(current, target float64) float64 {
	if rem := target - current; rem > 0 {
		return rem
	}
	return 0
}

// SubscribersFor estimates how many of the community's subscribers a
// commitment's fill level represents. Floor, no other rounding; legitimately
// 0 for a near-empty category.
func SubscribersFor(current, target float64, totalSubscribers int) int {
	if target <= 0 || current <= 0 {
		return 0
	}
	return int(math.Floor(current / target * float64(totalSubscribers)))
}

// ProjectProgress derives the display-ready view of a commitment record.
func ProjectProgress(cm models.CategoryProgress, totalSubscribers int) models.ProgressView {
	remaining := Remaining(cm.CurrentAmount, cm.TargetAmount)
	return models.ProgressView{
		CategoryProgress: cm,
		Percentage:       Percentage(cm.CurrentAmount, cm.TargetAmount),
		Remaining:        remaining,
		RemainingStr:     humanize.Commaf(remaining) + " " + cm.Unit,
		Subscribers:      SubscribersFor(cm.CurrentAmount, cm.TargetAmount, totalSubscribers),
	}
}
