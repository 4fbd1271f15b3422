package request_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahgin/fika-core/pkg/utils"
)

func validRequest() ItineraryRequest {
	return ItineraryRequest{
		Destination:    "singapore",
		NumDays:        3,
		StartDate:      "2026-03-02",
		BudgetTier:     BudgetTierSensible,
		Pacing:         PacingBalanced,
		InterestThemes: []string{"nature", "shopping"},
	}
}

func TestValidate(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())

	cases := []struct {
		name   string
		mutate func(*ItineraryRequest)
	}{
		{"empty destination", func(r *ItineraryRequest) { r.Destination = "  " }},
		{"zero days", func(r *ItineraryRequest) { r.NumDays = 0 }},
		{"negative days", func(r *ItineraryRequest) { r.NumDays = -1 }},
		{"unknown tier", func(r *ItineraryRequest) { r.BudgetTier = "lavish" }},
		{"unknown pacing", func(r *ItineraryRequest) { r.Pacing = "frantic" }},
		{"no themes", func(r *ItineraryRequest) { r.InterestThemes = nil }},
		{"unknown theme", func(r *ItineraryRequest) { r.InterestThemes = []string{"time_travel"} }},
		{"bad date", func(r *ItineraryRequest) { r.StartDate = "02/03/2026" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			assert.ErrorIs(t, req.Validate(), utils.ErrInvalidRequest)
		})
	}
}

func TestStart(t *testing.T) {
	req := validRequest()
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), req.Start())

	req.StartDate = ""
	start := req.Start()
	assert.Equal(t, 0, start.Hour())
	assert.False(t, start.After(time.Now()))
}

func TestThemesDedupe(t *testing.T) {
	req := validRequest()
	req.InterestThemes = []string{"nature", "shopping", "nature", "shopping", "beach"}
	require.Equal(t, []string{"nature", "shopping", "beach"}, req.Themes())
}
