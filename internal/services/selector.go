package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/pkg/config"
	"github.com/kahgin/fika-core/pkg/utils"
)

// Selection is the ranked place pool a trip is planned from.
type Selection struct {
	Places   []ScoredPlace // score descending, ID ascending on ties
	Themes   []string      // themes actually used for interest matching
	CountIn  int           // candidates fetched before filtering
	CountOut int           // places kept
}

type Selector struct {
	catalog CatalogGateway
	scorer  *Scorer
	cfg     *config.PlannerConfig
	logger  *zap.Logger
}

func NewSelector(catalog CatalogGateway, scorer *Scorer, cfg *config.PlannerConfig, logger *zap.Logger) *Selector {
	return &Selector{catalog: catalog, scorer: scorer, cfg: cfg, logger: logger}
}

// Select fetches candidates, scores them, and keeps the best pool for the
// trip length with a per-theme share cap and role floors for meals and
// accommodation. Returns ErrInsufficientCandidates when nothing survives.
func (s *Selector) Select(ctx context.Context, req *request_models.ItineraryRequest) (*Selection, error) {
	themes, err := s.resolveThemes(ctx, req)
	if err != nil {
		return nil, err
	}

	quota := s.quotaFor(req.NumDays)
	candidates, err := s.catalog.FetchCandidates(ctx, req.Destination, themes, quota)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredPlace, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		accepted, value := s.scorer.Score(p, req, themes)
		if !accepted {
			continue
		}
		scored = append(scored, ScoredPlace{
			Place:         *p,
			Score:         value,
			MatchedThemes: s.scorer.MatchedThemes(p, themes),
		})
	}
	SortScored(scored)

	if len(scored) == 0 {
		s.logger.Warn("no candidates survived filtering",
			zap.String("destination", req.Destination),
			zap.Int("count_in", len(candidates)))
		return nil, utils.ErrInsufficientCandidates
	}

	target := req.NumDays * s.cfg.PlacesPerDay[req.Pacing]
	if target <= 0 || target > len(scored) {
		target = len(scored)
	}

	selected := s.capThemeShare(scored, target)
	selected = s.enforceRoleFloors(selected, scored, req.NumDays)
	SortScored(selected)

	s.logger.Info("selection built",
		zap.String("destination", req.Destination),
		zap.Strings("themes", themes),
		zap.Int("count_in", len(candidates)),
		zap.Int("count_out", len(selected)))

	return &Selection{
		Places:   selected,
		Themes:   themes,
		CountIn:  len(candidates),
		CountOut: len(selected),
	}, nil
}

// resolveThemes combines the traveler's interests with the destination's
// popular themes, then the static fallbacks, until at least three themes are
// set. Nightlife never enters by augmentation when it is excluded.
func (s *Selector) resolveThemes(ctx context.Context, req *request_models.ItineraryRequest) ([]string, error) {
	const minThemes = 3

	themes := req.Themes()
	if len(themes) > s.cfg.MaxThemes {
		themes = themes[:s.cfg.MaxThemes]
	}
	if len(themes) >= minThemes {
		return themes, nil
	}

	seen := make(map[string]bool, len(themes))
	for _, t := range themes {
		seen[t] = true
	}
	add := func(pool []string) {
		for _, t := range pool {
			if len(themes) >= minThemes {
				return
			}
			if seen[t] {
				continue
			}
			if req.Flags.ExcludeNightlife && t == ThemeNightlife {
				continue
			}
			seen[t] = true
			themes = append(themes, t)
		}
	}

	popular, err := s.catalog.TopThemes(ctx, req.Destination, s.cfg.MaxThemes)
	if err != nil {
		return nil, err
	}
	add(popular)
	add(s.cfg.FallbackThemes)
	return themes, nil
}

func (s *Selector) quotaFor(numDays int) CatalogQuota {
	capped := func(n, limit int) int {
		if n > limit {
			return limit
		}
		return n
	}
	return CatalogQuota{
		Attractions:    capped(numDays*s.cfg.AttractionQuotaPerDay, s.cfg.AttractionQuotaCap),
		Meals:          capped(numDays*s.cfg.MealQuotaPerDay, s.cfg.MealQuotaCap),
		Accommodations: capped(numDays+s.cfg.StayQuotaExtra, s.cfg.StayQuotaCap),
	}
}

// capThemeShare walks the ranked list taking places until the target is
// reached, deferring any pure attraction whose lead theme would exceed its
// share of the pool. Deferred places backfill in rank order if the walk
// comes up short.
func (s *Selector) capThemeShare(ranked []ScoredPlace, target int) []ScoredPlace {
	maxPerTheme := int(float64(target) * s.cfg.ThemeShareCap)
	if maxPerTheme < 1 {
		maxPerTheme = 1
	}

	byTheme := make(map[string]int)
	selected := make([]ScoredPlace, 0, target)
	var deferred []ScoredPlace

	for _, sp := range ranked {
		if len(selected) >= target {
			break
		}
		theme := leadTheme(&sp)
		if sp.PureAttraction() && theme != "" && byTheme[theme] >= maxPerTheme {
			deferred = append(deferred, sp)
			continue
		}
		if theme != "" {
			byTheme[theme]++
		}
		selected = append(selected, sp)
	}
	for _, sp := range deferred {
		if len(selected) >= target {
			break
		}
		selected = append(selected, sp)
	}
	return selected
}

func leadTheme(sp *ScoredPlace) string {
	if len(sp.MatchedThemes) > 0 {
		return sp.MatchedThemes[0]
	}
	return ""
}

// enforceRoleFloors swaps tail attractions out for the best unselected meal
// and accommodation places so routing has something to place at meal windows
// and a plausible depot.
func (s *Selector) enforceRoleFloors(selected, ranked []ScoredPlace, numDays int) []ScoredPlace {
	inSelection := make(map[string]bool, len(selected))
	for _, sp := range selected {
		inSelection[sp.ID] = true
	}
	countRole := func(role string) int {
		n := 0
		for _, sp := range selected {
			if sp.HasRole(role) {
				n++
			}
		}
		return n
	}
	availableRole := func(role string) int {
		n := 0
		for _, sp := range ranked {
			if sp.HasRole(role) {
				n++
			}
		}
		return n
	}

	floors := []struct {
		role string
		want int
	}{
		{RoleMeal, minInt(numDays*2, availableRole(RoleMeal))},
		{RoleAccommodation, minInt(1, availableRole(RoleAccommodation))},
	}

	for _, f := range floors {
		have := countRole(f.role)
		for _, sp := range ranked {
			if have >= f.want {
				break
			}
			if inSelection[sp.ID] || !sp.HasRole(f.role) {
				continue
			}
			if idx := lowestPureAttraction(selected); idx >= 0 {
				delete(inSelection, selected[idx].ID)
				selected[idx] = sp
			} else {
				selected = append(selected, sp)
			}
			inSelection[sp.ID] = true
			have++
		}
	}
	return selected
}

// lowestPureAttraction finds the swap victim: the lowest-scored pure
// attraction, highest ID on ties.
func lowestPureAttraction(selected []ScoredPlace) int {
	idx := -1
	for i := range selected {
		if !selected[i].PureAttraction() {
			continue
		}
		if idx < 0 ||
			selected[i].Score < selected[idx].Score ||
			(selected[i].Score == selected[idx].Score && selected[i].ID > selected[idx].ID) {
			idx = i
		}
	}
	return idx
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
