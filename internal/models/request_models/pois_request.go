package request_models

import "github.com/google/uuid"

type CreatePoiRequest struct {
	Name                 string              `json:"name" binding:"required"`
	Destination          string              `json:"destination" binding:"required"`
	Latitude             float64             `json:"latitude" binding:"required"`
	Longitude            float64             `json:"longitude" binding:"required"`
	Roles                []string            `json:"roles"`
	Themes               []string            `json:"themes"`
	Restrictions         []string            `json:"restrictions"`
	OpeningHours         map[string][]string `json:"opening_hours"`
	VisitMinutes         int                 `json:"visit_minutes"`
	PriceLevel           *float64            `json:"price_level"`
	Rating               *float64            `json:"rating"`
	ReviewCount          *int                `json:"review_count"`
	WheelchairAccessible bool                `json:"wheelchair_accessible"`
	KidsFriendly         bool                `json:"kids_friendly"`
	PetsFriendly         bool                `json:"pets_friendly"`
	HalalFood            bool                `json:"halal_food"`
}

type UpdatePoiRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
	CreatePoiRequest
}
