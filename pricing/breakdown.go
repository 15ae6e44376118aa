// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pricing

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

// roundTenth rounds to one decimal before formatting; FtoaWithDigits alone
// truncates.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Whole-animal reference for beef share fractions: a whole animal yields
// 360 lb of cuts at the $14/lb base price, so a tier's price multiplier is
// its monthly pounds and multiplier/360 is its fraction of the animal.
// TODO: confirm the 360 lb yield assumption with the ranch before adding
// another formula-priced animal family.
const (
	BeefWholeAnimalWeightLb   = 360.0
	BeefWholeAnimalPricePerLb = 14.0
)

// Breakdown estimates the per-cut contents of a share tier. Two variants
// exist: formula-driven (beef) and table-driven (lamb).
type Breakdown interface {
	Cuts(opt models.ShareOption) []models.BreakdownCut
}

// CutWeight is one cut's yield from a whole animal.
type CutWeight struct {
	Name     string
	WeightLb float64
}

// FormulaBreakdown scales whole-animal cut weights by the tier's share
// fraction (price multiplier over the whole-animal multiplier).
type FormulaBreakdown struct {
	WholeAnimalWeightLb float64
	CutWeights          []CutWeight
}

// Cuts returns the estimated cut amounts for a tier. Amounts under a pound
// are shown in ounces; everything is rounded to one decimal for display.
// A zero share fraction suppresses the breakdown entirely.
func (f FormulaBreakdown) Cuts(opt models.ShareOption) []models.BreakdownCut {
	fraction := opt.PriceMultiplier / f.WholeAnimalWeightLb
	if fraction == 0 {
		return nil
	}
	out := make([]models.BreakdownCut, 0, len(f.CutWeights))
	for _, cw := range f.CutWeights {
		lbs := cw.WeightLb * fraction
		var amount string
		if lbs < 1 {
			amount = humanize.FtoaWithDigits(roundTenth(lbs*16), 1) + " oz"
		} else {
			amount = humanize.FtoaWithDigits(roundTenth(lbs), 1) + " lbs"
		}
		out = append(out, models.BreakdownCut{Cut: cw.Name, Amount: amount})
	}
	return out
}

// TableBreakdown looks cut amounts up by share label, falling back to the
// smallest tier's entry for unknown labels.
type TableBreakdown struct {
	Entries  map[string][]models.BreakdownCut
	Fallback string
}

// Cuts returns the fixed cut list for a tier's label. A zero multiplier
// (the "no share" tier) suppresses the breakdown.
func (t TableBreakdown) Cuts(opt models.ShareOption) []models.BreakdownCut {
	if opt.PriceMultiplier == 0 {
		return nil
	}
	if cuts, ok := t.Entries[opt.Label]; ok {
		return cuts
	}
	return t.Entries[t.Fallback]
}

// beefBreakdown covers the whole-animal cut yields summing to 360 lb.
var beefBreakdown = FormulaBreakdown{
	WholeAnimalWeightLb: BeefWholeAnimalWeightLb,
	CutWeights: []CutWeight{
		{Name: "Ground Beef", WeightLb: 120},
		{Name: "Steaks", WeightLb: 60},
		{Name: "Roasts", WeightLb: 80},
		{Name: "Ribs", WeightLb: 30},
		{Name: "Brisket", WeightLb: 20},
		{Name: "Stew Meat", WeightLb: 30},
		{Name: "Organ Meats & Bones", WeightLb: 20},
	},
}

// lambBreakdown is butcher-provided per-tier amounts, not derived from a
// shared fraction formula.
var lambBreakdown = TableBreakdown{
	Fallback: "1/8 share",
	Entries: map[string][]models.BreakdownCut{
		"1/2 share": {
			{Cut: "Leg/Shoulder Roast", Amount: "6-8 lbs"},
			{Cut: "Loin & Rib Chops", Amount: "4-5 lbs"},
			{Cut: "Ground Lamb", Amount: "5-6 lbs"},
			{Cut: "Stew Meat", Amount: "2-3 lbs"},
			{Cut: "Shanks & Ribs", Amount: "2-3 lbs"},
		},
		"1/4 share": {
			{Cut: "Leg/Shoulder Roast", Amount: "3-4 lbs"},
			{Cut: "Loin & Rib Chops", Amount: "2-3 lbs"},
			{Cut: "Ground Lamb", Amount: "2-3 lbs"},
			{Cut: "Stew Meat", Amount: "1-2 lbs"},
		},
		"1/6 share": {
			{Cut: "Leg/Shoulder Roast", Amount: "2-3 lbs"},
			{Cut: "Loin & Rib Chops", Amount: "1-2 lbs"},
			{Cut: "Ground Lamb", Amount: "1-2 lbs"},
		},
		"1/8 share": {
			{Cut: "Leg/Shoulder Roast", Amount: "1-2 lbs"},
			{Cut: "Loin & Rib Chops", Amount: "1 lb"},
			{Cut: "Ground Lamb", Amount: "1-2 lbs"},
		},
	},
}

// BreakdownFor selects the breakdown variant for a product family.
// Families without butcher data get no breakdown panel.
func BreakdownFor(p models.Product) (Breakdown, bool) {
	switch p.Category {
	case "beef":
		return beefBreakdown, true
	case "lamb":
		return lambBreakdown, true
	default:
		return nil, false
	}
}

// ShareBreakdownAt computes the full breakdown response for a share product
// at a tier index (clamped). The second return is false for flat products.
func ShareBreakdownAt(p models.Product, tier int) (models.ShareBreakdown, bool) {
	if !p.IsShare() {
		return models.ShareBreakdown{}, false
	}
	tier = ClampTier(p, tier)
	opt := p.ShareOptions[tier]

	sb := models.ShareBreakdown{
		Tier:         tier,
		Label:        opt.Label,
		MonthlyPrice: MonthlyPrice(p, tier),
	}
	if bd, ok := BreakdownFor(p); ok {
		sb.Cuts = bd.Cuts(opt)
	}
	return sb, true
}
