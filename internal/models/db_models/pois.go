package db_models

import "github.com/lib/pq"

// POI is a catalog row. Rows are fetched once per planning request and
// treated as an immutable snapshot afterwards.
type POI struct {
	BaseModel
	Name        string
	Destination string `gorm:"index"`
	Latitude    float64
	Longitude   float64

	// Roles a place can play in an itinerary: attraction, meal, accommodation.
	Roles  pq.StringArray `gorm:"type:text[]"`
	Themes pq.StringArray `gorm:"type:text[]"`
	// Restriction tags such as no_children or no_pets.
	Restrictions pq.StringArray `gorm:"type:text[]"`

	// OpeningHours maps weekday name to hour labels, e.g.
	// {"Monday": ["10 am-9 pm"]}. Stored as JSON.
	OpeningHours string `gorm:"type:jsonb"`
	VisitMinutes int

	PriceLevel  *float64
	Rating      *float64
	ReviewCount *int

	WheelchairAccessible bool
	KidsFriendly         bool
	PetsFriendly         bool
	HalalFood            bool

	Status string
}
