package response_models

type POI struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Destination          string              `json:"destination"`
	Latitude             float64             `json:"latitude"`
	Longitude            float64             `json:"longitude"`
	Roles                []string            `json:"roles"`
	Themes               []string            `json:"themes"`
	Restrictions         []string            `json:"restrictions,omitempty"`
	OpeningHours         map[string][]string `json:"opening_hours,omitempty"`
	VisitMinutes         int                 `json:"visit_minutes,omitempty"`
	PriceLevel           *float64            `json:"price_level,omitempty"`
	Rating               *float64            `json:"rating,omitempty"`
	ReviewCount          *int                `json:"review_count,omitempty"`
	WheelchairAccessible bool                `json:"wheelchair_accessible"`
	KidsFriendly         bool                `json:"kids_friendly"`
	PetsFriendly         bool                `json:"pets_friendly"`
	HalalFood            bool                `json:"halal_food"`
}
