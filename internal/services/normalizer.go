package services

import "math"

// Attribute normalization: every raw attribute maps onto [0, 1]. Missing
// attributes get a defined default here and are never a reason to reject a
// place; rejection is the scorer's job.

// PopularityScore folds rating and review volume into one signal. Review
// counts saturate around a thousand reviews.
func PopularityScore(rating *float64, reviews *int) float64 {
	r := 0.0
	if rating != nil {
		r = clamp01(*rating / 5.0)
	}
	if reviews == nil || *reviews <= 0 {
		return 0.5 * r
	}
	rc := math.Min(1.0, math.Log10(1.0+float64(*reviews))/3.0)
	return 0.7*r + 0.3*rc
}

// BudgetAlignment measures how close a price level (0..4) sits to the tier's
// target level. Unknown price is treated as a perfect fit so that free or
// unpriced places are never penalized.
func BudgetAlignment(priceLevel *float64, target float64) float64 {
	if priceLevel == nil {
		return 1.0
	}
	dist := math.Abs(*priceLevel - target)
	return math.Max(0.0, 1.0-dist/3.0)
}

// ThemeMatch is the fraction of selected themes the place covers.
func ThemeMatch(placeThemes, selected []string) float64 {
	if len(placeThemes) == 0 || len(selected) == 0 {
		return 0.0
	}
	set := make(map[string]bool, len(placeThemes))
	for _, t := range placeThemes {
		set[t] = true
	}
	matches := 0
	for _, t := range selected {
		if set[t] {
			matches++
		}
	}
	return float64(matches) / float64(len(selected))
}

// DurationFit favors visits that fit the pacing's per-stop service budget.
// A place with no declared duration fits any pacing.
func DurationFit(visitMinutes, serviceBudgetMin int) float64 {
	if visitMinutes <= 0 || serviceBudgetMin <= 0 {
		return 1.0
	}
	over := float64(visitMinutes-serviceBudgetMin) / 180.0
	if over <= 0 {
		return 1.0
	}
	return math.Max(0.0, 1.0-over)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
