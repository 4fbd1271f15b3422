package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/pkg/config"
)

func plannerConfig() *config.PlannerConfig {
	cfg := config.Default()
	return &cfg.Planner
}

func baseRequest() *request_models.ItineraryRequest {
	return &request_models.ItineraryRequest{
		Destination:    "singapore",
		NumDays:        3,
		BudgetTier:     request_models.BudgetTierSensible,
		Pacing:         request_models.PacingBalanced,
		InterestThemes: []string{"nature", "shopping"},
	}
}

func attraction(id string, themes ...string) Place {
	return Place{
		ID:       id,
		Name:     "place " + id,
		Roles:    []string{RoleAttraction},
		Themes:   themes,
		Rating:   fptr(4.0),
		Latitude: 1.30, Longitude: 103.85,
	}
}

func TestScoreHardFilters(t *testing.T) {
	scorer := NewScorer(plannerConfig())
	themes := []string{"nature"}

	t.Run("wheelchair", func(t *testing.T) {
		req := baseRequest()
		req.Flags.WheelchairAccessible = true
		p := attraction("a1", "nature")
		accepted, _ := scorer.Score(&p, req, themes)
		assert.False(t, accepted)

		p.WheelchairAccessible = true
		accepted, _ = scorer.Score(&p, req, themes)
		assert.True(t, accepted)
	})

	t.Run("nightlife excluded", func(t *testing.T) {
		req := baseRequest()
		req.Flags.ExcludeNightlife = true
		p := attraction("a2", "nightlife")
		accepted, _ := scorer.Score(&p, req, themes)
		assert.False(t, accepted)
	})

	t.Run("halal meals only", func(t *testing.T) {
		req := baseRequest()
		req.Flags.IsMuslim = true
		p := attraction("a3", "food_culinary")
		p.Roles = []string{RoleMeal}
		accepted, _ := scorer.Score(&p, req, themes)
		assert.False(t, accepted)

		p.HalalFood = true
		accepted, _ = scorer.Score(&p, req, themes)
		assert.True(t, accepted)

		// Non-meal places are not dietary-filtered.
		q := attraction("a4", "nature")
		accepted, _ = scorer.Score(&q, req, themes)
		assert.True(t, accepted)
	})

	t.Run("restrictions", func(t *testing.T) {
		req := baseRequest()
		req.Flags.HasChild = true
		req.Flags.HasPets = true
		p := attraction("a5", "nature")
		p.Restrictions = []string{RestrictionNoChildren}
		accepted, _ := scorer.Score(&p, req, themes)
		assert.False(t, accepted)

		p.Restrictions = []string{RestrictionNoPets}
		accepted, _ = scorer.Score(&p, req, themes)
		assert.False(t, accepted)

		p.Restrictions = nil
		accepted, _ = scorer.Score(&p, req, themes)
		assert.True(t, accepted)
	})
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer(plannerConfig())
	req := baseRequest()
	p := attraction("a1", "nature", "shopping")
	themes := []string{"nature", "shopping"}

	_, first := scorer.Score(&p, req, themes)
	for i := 0; i < 10; i++ {
		_, again := scorer.Score(&p, req, themes)
		assert.Equal(t, first, again)
	}
}

func TestScoreThemeMatchRewardsAttractions(t *testing.T) {
	scorer := NewScorer(plannerConfig())
	req := baseRequest()
	themes := []string{"nature", "shopping"}

	matched := attraction("a1", "nature", "shopping")
	unmatched := attraction("a2", "adventure")

	_, sMatched := scorer.Score(&matched, req, themes)
	_, sUnmatched := scorer.Score(&unmatched, req, themes)
	assert.Greater(t, sMatched, sUnmatched)
}

func TestScoreBoundedByOne(t *testing.T) {
	scorer := NewScorer(plannerConfig())
	req := baseRequest()
	req.Flags = request_models.TripFlags{
		HasChild: true, HasPets: true, WheelchairAccessible: true, IsMuslim: true,
	}

	p := attraction("a1", "nature", "shopping")
	p.KidsFriendly = true
	p.PetsFriendly = true
	p.WheelchairAccessible = true
	p.HalalFood = true
	p.ReviewCount = iptr(2000)
	p.Rating = fptr(5.0)

	accepted, value := scorer.Score(&p, req, []string{"nature", "shopping"})
	require.True(t, accepted)
	assert.LessOrEqual(t, value, 1.0+1e-9, "renormalized weights keep scores in [0,1]")
	assert.Greater(t, value, 0.0)
}

func TestSortScoredTieBreaksOnID(t *testing.T) {
	places := []ScoredPlace{
		{Place: Place{ID: "c"}, Score: 0.5},
		{Place: Place{ID: "a"}, Score: 0.5},
		{Place: Place{ID: "b"}, Score: 0.9},
	}
	SortScored(places)
	assert.Equal(t, "b", places[0].ID)
	assert.Equal(t, "a", places[1].ID)
	assert.Equal(t, "c", places[2].ID)
}
