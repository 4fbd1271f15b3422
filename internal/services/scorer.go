package services

import (
	"sort"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/pkg/config"
)

// Scorer computes the multi-attribute utility of a place for one request.
// Scoring is pure and total: the same place, request and theme set always
// produce the same verdict, and well-formed input never fails.
type Scorer struct {
	cfg *config.PlannerConfig
}

func NewScorer(cfg *config.PlannerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score applies the hard-constraint filters, then the weighted sum of
// normalized attributes. accepted=false means a hard filter fired; the value
// is meaningless in that case.
func (s *Scorer) Score(p *Place, req *request_models.ItineraryRequest, selectedThemes []string) (accepted bool, value float64) {
	if !s.passesHardFilters(p, &req.Flags) {
		return false, 0
	}

	weights := s.applicableWeights(p, req)

	var total float64
	for _, dw := range weights {
		var v float64
		switch dw.dim {
		case dimInterest:
			if p.PureAttraction() {
				v = ThemeMatch(p.Themes, selectedThemes)
			}
		case dimCost:
			v = BudgetAlignment(p.PriceLevel, s.cfg.BudgetTarget[req.BudgetTier])
		case dimPopularity:
			v = PopularityScore(p.Rating, p.ReviewCount)
		case dimChild:
			v = boolScore(p.KidsFriendly)
		case dimDietary:
			v = boolScore(p.HalalFood)
		case dimPet:
			v = boolScore(p.PetsFriendly)
		case dimAccess:
			v = boolScore(p.WheelchairAccessible)
		case dimDuration:
			v = DurationFit(p.VisitMinutes, s.cfg.AttractionServiceMin[req.Pacing])
		}
		total += dw.weight * v
	}
	return true, total
}

// MatchedThemes lists the selected themes a place carries, in selection order.
func (s *Scorer) MatchedThemes(p *Place, selectedThemes []string) []string {
	var out []string
	for _, t := range selectedThemes {
		if p.HasTheme(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Scorer) passesHardFilters(p *Place, flags *request_models.TripFlags) bool {
	if flags.WheelchairAccessible && !p.WheelchairAccessible {
		return false
	}
	if flags.ExcludeNightlife && p.HasTheme(ThemeNightlife) {
		return false
	}
	if flags.IsMuslim && p.HasRole(RoleMeal) && !p.HalalFood {
		return false
	}
	if flags.HasChild && p.HasRestriction(RestrictionNoChildren) {
		return false
	}
	if flags.HasPets && p.HasRestriction(RestrictionNoPets) {
		return false
	}
	return true
}

type scoreDim int

const (
	dimInterest scoreDim = iota
	dimCost
	dimPopularity
	dimChild
	dimDietary
	dimPet
	dimAccess
	dimDuration
)

type dimWeight struct {
	dim    scoreDim
	weight float64
}

// applicableWeights builds the renormalized weight vector for this
// place/request pair. Flag dimensions only participate when the flag is set;
// the dietary dimension only applies to meal-role places.
func (s *Scorer) applicableWeights(p *Place, req *request_models.ItineraryRequest) []dimWeight {
	cfg := s.cfg
	dims := []dimWeight{
		{dimInterest, cfg.InterestWeight},
		{dimCost, cfg.CostWeight * cfg.CostTierScale[req.BudgetTier]},
		{dimPopularity, cfg.PopularityWeight},
		{dimDuration, cfg.DurationWeight[req.Pacing]},
	}
	if req.Flags.HasChild {
		dims = append(dims, dimWeight{dimChild, cfg.ChildWeight})
	}
	if req.Flags.HasPets {
		dims = append(dims, dimWeight{dimPet, cfg.PetWeight})
	}
	if req.Flags.IsMuslim && p.HasRole(RoleMeal) {
		dims = append(dims, dimWeight{dimDietary, cfg.DietaryWeight})
	}
	if req.Flags.WheelchairAccessible {
		dims = append(dims, dimWeight{dimAccess, cfg.AccessWeight})
	}

	var sum float64
	for _, dw := range dims {
		sum += dw.weight
	}
	if sum <= 0 {
		return nil
	}
	for i := range dims {
		dims[i].weight /= sum
	}
	return dims
}

// SortScored orders places by score descending, identifier ascending. Ties
// must never depend on slice or map iteration order.
func SortScored(places []ScoredPlace) {
	sort.SliceStable(places, func(i, j int) bool {
		if places[i].Score != places[j].Score {
			return places[i].Score > places[j].Score
		}
		return places[i].ID < places[j].ID
	})
}
