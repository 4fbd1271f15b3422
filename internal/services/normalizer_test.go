package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestPopularityScore(t *testing.T) {
	assert.InDelta(t, 0.45, PopularityScore(fptr(4.5), nil), 1e-9, "no reviews halves the rating signal")
	assert.InDelta(t, 0.45, PopularityScore(fptr(4.5), iptr(0)), 1e-9)
	assert.Equal(t, 0.0, PopularityScore(nil, nil))

	// 999 reviews saturate the volume term: 0.7*0.9 + 0.3*1.0.
	assert.InDelta(t, 0.93, PopularityScore(fptr(4.5), iptr(999)), 1e-9)

	low := PopularityScore(fptr(4.0), iptr(5))
	high := PopularityScore(fptr(4.0), iptr(500))
	assert.Greater(t, high, low)
}

func TestBudgetAlignment(t *testing.T) {
	assert.Equal(t, 1.0, BudgetAlignment(nil, 2.0), "unpriced places fit any tier")
	assert.Equal(t, 1.0, BudgetAlignment(fptr(2.0), 2.0))
	assert.InDelta(t, 2.0/3.0, BudgetAlignment(fptr(1.0), 2.0), 1e-9)
	assert.Equal(t, 0.0, BudgetAlignment(fptr(4.0), 1.0))
}

func TestThemeMatch(t *testing.T) {
	selected := []string{"nature", "shopping", "beach"}
	assert.Equal(t, 0.0, ThemeMatch(nil, selected))
	assert.Equal(t, 0.0, ThemeMatch([]string{"nature"}, nil))
	assert.InDelta(t, 1.0/3.0, ThemeMatch([]string{"nature"}, selected), 1e-9)
	assert.InDelta(t, 2.0/3.0, ThemeMatch([]string{"nature", "beach", "food_culinary"}, selected), 1e-9)
	assert.Equal(t, 1.0, ThemeMatch(selected, selected))
}

func TestDurationFit(t *testing.T) {
	assert.Equal(t, 1.0, DurationFit(0, 90), "unknown duration fits")
	assert.Equal(t, 1.0, DurationFit(60, 90))
	assert.Equal(t, 1.0, DurationFit(90, 90))
	assert.InDelta(t, 0.5, DurationFit(180, 90), 1e-9)
	assert.Equal(t, 0.0, DurationFit(300, 90))
}
