package services

// Domain snapshot types for the planning pipeline. A Place is immutable once
// fetched from the catalog; the pipeline never writes back to it.

const (
	RoleAttraction    = "attraction"
	RoleMeal          = "meal"
	RoleAccommodation = "accommodation"

	ThemeNightlife = "nightlife"

	RestrictionNoChildren = "no_children"
	RestrictionNoPets     = "no_pets"
)

// TimeWindow is a [Open, Close) interval in minutes from midnight.
type TimeWindow struct {
	Open  int
	Close int
}

type Place struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	Roles        []string
	Themes       []string
	Restrictions []string

	// Hours maps weekday name ("Monday") to opening windows. A weekday
	// missing from a non-nil map means closed that day; a nil map means
	// the catalog had no hours and role defaults apply.
	Hours map[string][]TimeWindow

	VisitMinutes int
	PriceLevel   *float64
	Rating       *float64
	ReviewCount  *int

	WheelchairAccessible bool
	KidsFriendly         bool
	PetsFriendly         bool
	HalalFood            bool
}

func (p *Place) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Place) HasTheme(theme string) bool {
	for _, t := range p.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func (p *Place) HasRestriction(tag string) bool {
	for _, r := range p.Restrictions {
		if r == tag {
			return true
		}
	}
	return false
}

// PureAttraction reports whether the place is an attraction and nothing else.
// Theme match only contributes to pure attractions; restaurants and hotels
// are picked for their role, not their themes.
func (p *Place) PureAttraction() bool {
	return p.HasRole(RoleAttraction) && !p.HasRole(RoleMeal) && !p.HasRole(RoleAccommodation)
}

// ScoredPlace pairs a place with its deterministic utility score.
type ScoredPlace struct {
	Place
	Score         float64
	MatchedThemes []string
}
