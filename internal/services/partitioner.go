package services

// DayPool is the material one day is routed from. Pools are disjoint: a
// place belongs to exactly one day, so nothing is ever visited twice over
// the trip.
type DayPool struct {
	Attractions []ScoredPlace
	Meals       []ScoredPlace
}

// PartitionDays splits the selection over the trip days, round-robin in rank
// order per role so every day gets a fair share of the best places. When the
// destination has fewer meal candidates than days want, later days simply go
// meal-less rather than revisiting a restaurant.
func PartitionDays(selection *Selection, numDays int) []DayPool {
	if numDays <= 0 {
		return nil
	}
	pools := make([]DayPool, numDays)

	var attractions, meals []ScoredPlace
	for _, sp := range selection.Places {
		switch {
		case sp.HasRole(RoleMeal):
			meals = append(meals, sp)
		case sp.HasRole(RoleAttraction):
			attractions = append(attractions, sp)
		}
	}

	for i, sp := range attractions {
		d := i % numDays
		pools[d].Attractions = append(pools[d].Attractions, sp)
	}
	for i, sp := range meals {
		d := i % numDays
		pools[d].Meals = append(pools[d].Meals, sp)
	}
	return pools
}
