package response_models

// ScoredPOI is a catalog place with its computed utility score and the
// requested themes it matched.
type ScoredPOI struct {
	POI
	Score         float64  `json:"score"`
	MatchedThemes []string `json:"matched_themes,omitempty"`
}

type SelectionMeta struct {
	SelectedThemes []string `json:"selected_themes"`
	CountIn        int      `json:"count_in"`
	CountOut       int      `json:"count_out"`
}

// SelectionResponse is the scorer/selector stage output. Distance, time and
// route_order stay zero-valued until the router has run.
type SelectionResponse struct {
	Status        string        `json:"status"`
	Places        []ScoredPOI   `json:"places"`
	TotalDistance float64       `json:"total_distance"`
	TotalTime     int           `json:"total_time"`
	RouteOrder    []string      `json:"route_order"`
	Meta          SelectionMeta `json:"meta"`
}

const (
	StopRoleAttraction = "attraction"
	StopRoleMeal       = "meal"
	StopRoleHotel      = "hotel"
)

type Stop struct {
	PoiID        string `json:"poi_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Arrival      string `json:"arrival"`       // local time HH:MM
	StartService string `json:"start_service"` // local time HH:MM
	Depart       string `json:"depart"`        // local time HH:MM
}

type DayPlan struct {
	Date           string `json:"date"` // ISO 8601
	Stops          []Stop `json:"stops"`
	Meals          int    `json:"meals"`
	TravelMinutes  int    `json:"travel_minutes"`
	DistanceMeters int    `json:"distance_meters"`
}

type ItineraryResponse struct {
	Status        string        `json:"status"`
	Days          []DayPlan     `json:"days"`
	TotalDistance float64       `json:"total_distance"` // kilometers
	TotalTime     int           `json:"total_time"`     // travel minutes
	RouteOrder    []string      `json:"route_order"`
	Meta          SelectionMeta `json:"meta"`
}
