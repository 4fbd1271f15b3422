package request_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/kahgin/fika-core/pkg/utils"
)

const (
	BudgetTierBudget   = "budget"
	BudgetTierSensible = "sensible"
	BudgetTierPremium  = "premium"

	PacingRelaxed  = "relaxed"
	PacingBalanced = "balanced"
	PacingPacked   = "packed"
)

// Theme vocabulary shared with the catalog. Nightlife is a theme and also
// the tag the exclude_nightlife flag filters on.
var KnownThemes = map[string]bool{
	"shopping":         true,
	"food_culinary":    true,
	"cultural_history": true,
	"nature":           true,
	"nightlife":        true,
	"adventure":        true,
	"art_museums":      true,
	"beach":            true,
	"family":           true,
	"relaxation":       true,
}

type TripFlags struct {
	HasChild             bool `json:"has_child"`
	HasPets              bool `json:"has_pets"`
	WheelchairAccessible bool `json:"wheelchair_accessible"`
	IsMuslim             bool `json:"is_muslim"`
	ExcludeNightlife     bool `json:"exclude_nightlife"`
}

type ItineraryRequest struct {
	Destination    string    `json:"destination"`
	NumDays        int       `json:"num_days"`
	StartDate      string    `json:"start_date,omitempty"` // ISO date, defaults to today
	BudgetTier     string    `json:"budget_tier"`
	Pacing         string    `json:"pacing"`
	InterestThemes []string  `json:"interest_themes"`
	Flags          TripFlags `json:"flags"`
}

// Validate rejects malformed requests before any scoring happens. Unknown
// enum values are errors, not defaults.
func (r *ItineraryRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidRequest)
	}
	if r.NumDays < 1 {
		return fmt.Errorf("%w: num_days must be at least 1", utils.ErrInvalidRequest)
	}
	switch r.BudgetTier {
	case BudgetTierBudget, BudgetTierSensible, BudgetTierPremium:
	default:
		return fmt.Errorf("%w: unknown budget_tier %q", utils.ErrInvalidRequest, r.BudgetTier)
	}
	switch r.Pacing {
	case PacingRelaxed, PacingBalanced, PacingPacked:
	default:
		return fmt.Errorf("%w: unknown pacing %q", utils.ErrInvalidRequest, r.Pacing)
	}
	if len(r.InterestThemes) == 0 {
		return fmt.Errorf("%w: interest_themes must not be empty", utils.ErrInvalidRequest)
	}
	for _, t := range r.InterestThemes {
		if !KnownThemes[t] {
			return fmt.Errorf("%w: unknown theme %q", utils.ErrInvalidRequest, t)
		}
	}
	if r.StartDate != "" {
		if _, err := time.Parse("2006-01-02", r.StartDate); err != nil {
			return fmt.Errorf("%w: start_date must be ISO 8601 (YYYY-MM-DD)", utils.ErrInvalidRequest)
		}
	}
	return nil
}

// Start returns the first trip date, today when unset.
func (r *ItineraryRequest) Start() time.Time {
	if r.StartDate != "" {
		if d, err := time.Parse("2006-01-02", r.StartDate); err == nil {
			return d
		}
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Themes returns the requested themes deduplicated, order preserved.
func (r *ItineraryRequest) Themes() []string {
	seen := make(map[string]bool, len(r.InterestThemes))
	out := make([]string, 0, len(r.InterestThemes))
	for _, t := range r.InterestThemes {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
