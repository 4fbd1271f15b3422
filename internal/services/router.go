package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/pkg/config"
	"github.com/kahgin/fika-core/pkg/utils"
)

// Depot is where every day starts and ends, usually the chosen
// accommodation.
type Depot struct {
	ID   string
	Name string
	Lat  float64
	Lng  float64
}

// RoutedStop is one scheduled visit. Times are minutes from midnight. Slot
// is set for meal stops only and pins the service start to a meal window.
type RoutedStop struct {
	Place           Place
	Role            string
	Score           float64
	Slot            TimeWindow
	ArrivalMin      int
	ServiceStartMin int
	DepartMin       int
	ServiceMin      int
}

// DayRoute is one day's schedule, depot to depot.
type DayRoute struct {
	Date           time.Time
	Stops          []RoutedStop
	TravelMinutes  int
	DistanceMeters int
	ReturnMin      int // arrival back at the depot, minutes from midnight
}

// MealCount reports the meal stops in the day.
func (d *DayRoute) MealCount() int {
	n := 0
	for i := range d.Stops {
		if d.Stops[i].Role == RoleMeal {
			n++
		}
	}
	return n
}

type DayRouter struct {
	oracle DistanceOracle
	cfg    *config.PlannerConfig
	logger *zap.Logger
}

func NewDayRouter(oracle DistanceOracle, cfg *config.PlannerConfig, logger *zap.Logger) *DayRouter {
	return &DayRouter{oracle: oracle, cfg: cfg, logger: logger}
}

// mealLeadMin is how early the router starts steering toward a meal window.
const mealLeadMin = 45

// RouteDay builds one day's schedule from the day's pool: greedy nearest
// feasible insertion with meal windows taking priority, a trimming pass that
// enforces the day's time budget, and a bounded pairwise improvement pass.
// An empty pool yields a depot-only day with no stops.
func (r *DayRouter) RouteDay(ctx context.Context, depot Depot, pool DayPool, req *request_models.ItineraryRequest, date time.Time) (*DayRoute, error) {
	weekday := utils.WeekdayName(date)
	dayStart := r.cfg.DayStartMin
	dayEnd := dayStart + r.cfg.DayBudgetMin[req.Pacing]

	stops, err := r.construct(ctx, depot, pool, req, weekday, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	stops, total, err := r.enforceBudget(ctx, depot, stops, weekday, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	stops, total, err = r.improve(ctx, depot, stops, total, weekday, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &DayRoute{
		Date:           date,
		Stops:          stops,
		TravelMinutes:  total.travelMin,
		DistanceMeters: total.distanceM,
		ReturnMin:      total.returnMin,
	}, nil
}

type routeTotals struct {
	travelMin int
	distanceM int
	returnMin int // arrival back at the depot
}

func (r *DayRouter) construct(ctx context.Context, depot Depot, pool DayPool, req *request_models.ItineraryRequest, weekday string, dayStart, dayEnd int) ([]RoutedStop, error) {
	attractions := append([]ScoredPlace(nil), pool.Attractions...)
	meals := append([]ScoredPlace(nil), pool.Meals...)

	slots := []TimeWindow{
		{Open: r.cfg.LunchOpenMin, Close: r.cfg.LunchCloseMin},
		{Open: r.cfg.DinnerOpenMin, Close: r.cfg.DinnerCloseMin},
	}
	slotServed := make([]bool, len(slots))

	attractionSvc := r.cfg.AttractionServiceMin[req.Pacing]
	mealSvc := r.cfg.MealServiceMin[req.Pacing]

	var stops []RoutedStop
	t := dayStart
	cur := depotPoint(depot)

	for {
		// A meal window in reach takes priority over attractions.
		slotIdx := activeMealSlot(slots, slotServed, t)
		if slotIdx >= 0 {
			if len(meals) > 0 && r.mealsPlaced(stops) < r.cfg.MaxMealsPerDay {
				stop, rest, err := r.pickMeal(ctx, cur, t, meals, slots[slotIdx], weekday, mealSvc, dayEnd)
				if err != nil {
					return nil, err
				}
				if stop != nil {
					slotServed[slotIdx] = true
					meals = rest
					stops = append(stops, *stop)
					t = stop.DepartMin
					cur = placePoint(&stop.Place)
					continue
				}
			}
			slotServed[slotIdx] = true // nothing fits, give the slot up
			continue
		}

		stop, rest, err := r.pickAttraction(ctx, cur, t, attractions, weekday, attractionSvc, dayEnd)
		if err != nil {
			return nil, err
		}
		if stop != nil {
			attractions = rest
			stops = append(stops, *stop)
			t = stop.DepartMin
			cur = placePoint(&stop.Place)
			continue
		}

		// No attraction fits; wait for the next meal window if one is ahead.
		if wait := nextMealSlotStart(slots, slotServed, t); wait > t && wait < dayEnd && len(meals) > 0 {
			t = wait
			continue
		}
		break
	}
	return stops, nil
}

func (r *DayRouter) mealsPlaced(stops []RoutedStop) int {
	n := 0
	for i := range stops {
		if stops[i].Role == RoleMeal {
			n++
		}
	}
	return n
}

// activeMealSlot returns the first unserved slot the clock has reached,
// counting the lead-in before it opens.
func activeMealSlot(slots []TimeWindow, served []bool, t int) int {
	for i, s := range slots {
		if served[i] {
			continue
		}
		if t >= s.Open-mealLeadMin && t < s.Close {
			return i
		}
	}
	return -1
}

func nextMealSlotStart(slots []TimeWindow, served []bool, t int) int {
	for i, s := range slots {
		if served[i] {
			continue
		}
		if start := s.Open - mealLeadMin; start > t {
			return start
		}
	}
	return -1
}

// pickMeal chooses the nearest remaining meal place whose service can start
// inside the slot. Ties break on travel, then score, then ID.
func (r *DayRouter) pickMeal(ctx context.Context, cur Point, t int, meals []ScoredPlace, slot TimeWindow, weekday string, svc, dayEnd int) (*RoutedStop, []ScoredPlace, error) {
	best := -1
	var bestStop RoutedStop
	var bestTravel int

	for i := range meals {
		sp := &meals[i]
		leg, err := r.oracle.Travel(ctx, cur, placePoint(&sp.Place))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", utils.ErrOracleUnavailable, err)
		}
		arrival := t + leg.DurationMin
		start, ok := earliestServiceStart(&sp.Place, weekday, arrival, svc, dayEnd)
		if !ok {
			continue
		}
		if start < slot.Open {
			start = slot.Open
		}
		if start > slot.Close || start+svc > dayEnd {
			continue
		}
		if ok := fitsPlaceWindows(&sp.Place, weekday, start, svc); !ok {
			continue
		}
		if best >= 0 && !betterPick(leg.DurationMin, sp, bestTravel, &meals[best]) {
			continue
		}
		best = i
		bestTravel = leg.DurationMin
		bestStop = RoutedStop{
			Place:           sp.Place,
			Role:            RoleMeal,
			Score:           sp.Score,
			Slot:            slot,
			ArrivalMin:      arrival,
			ServiceStartMin: start,
			DepartMin:       start + svc,
			ServiceMin:      svc,
		}
	}
	if best < 0 {
		return nil, meals, nil
	}
	rest := append(append([]ScoredPlace(nil), meals[:best]...), meals[best+1:]...)
	return &bestStop, rest, nil
}

func (r *DayRouter) pickAttraction(ctx context.Context, cur Point, t int, attractions []ScoredPlace, weekday string, defaultSvc, dayEnd int) (*RoutedStop, []ScoredPlace, error) {
	best := -1
	var bestStop RoutedStop
	var bestTravel int

	for i := range attractions {
		sp := &attractions[i]
		svc := serviceMinutes(&sp.Place, defaultSvc)
		leg, err := r.oracle.Travel(ctx, cur, placePoint(&sp.Place))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", utils.ErrOracleUnavailable, err)
		}
		arrival := t + leg.DurationMin
		start, ok := earliestServiceStart(&sp.Place, weekday, arrival, svc, dayEnd)
		if !ok {
			continue
		}
		if best >= 0 && !betterPick(leg.DurationMin, sp, bestTravel, &attractions[best]) {
			continue
		}
		best = i
		bestTravel = leg.DurationMin
		bestStop = RoutedStop{
			Place:           sp.Place,
			Role:            RoleAttraction,
			Score:           sp.Score,
			ArrivalMin:      arrival,
			ServiceStartMin: start,
			DepartMin:       start + svc,
			ServiceMin:      svc,
		}
	}
	if best < 0 {
		return nil, attractions, nil
	}
	rest := append(append([]ScoredPlace(nil), attractions[:best]...), attractions[best+1:]...)
	return &bestStop, rest, nil
}

// betterPick is the candidate ordering: shorter travel wins, then higher
// score, then smaller ID. Never depends on input order.
func betterPick(travel int, sp *ScoredPlace, bestTravel int, best *ScoredPlace) bool {
	if travel != bestTravel {
		return travel < bestTravel
	}
	if sp.Score != best.Score {
		return sp.Score > best.Score
	}
	return sp.ID < best.ID
}

func serviceMinutes(p *Place, fallback int) int {
	if p.VisitMinutes > 0 {
		return p.VisitMinutes
	}
	return fallback
}

// placeWindows resolves the opening windows for a weekday. Places without
// declared hours get role defaults: outdoors all day, everything else
// 10:00 to 22:00.
func placeWindows(p *Place, weekday string) []TimeWindow {
	if p.Hours != nil {
		return p.Hours[weekday]
	}
	if p.HasTheme("nature") {
		return []TimeWindow{{Open: 0, Close: utils.MinutesPerDay}}
	}
	return []TimeWindow{{Open: 10 * 60, Close: 22 * 60}}
}

// earliestServiceStart finds the first opening window where a visit arriving
// at `arrival` can run for `svc` minutes without crossing the window close or
// the end of the day.
func earliestServiceStart(p *Place, weekday string, arrival, svc, dayEnd int) (int, bool) {
	for _, w := range placeWindows(p, weekday) {
		start := arrival
		if start < w.Open {
			start = w.Open
		}
		if start+svc <= w.Close && start+svc <= dayEnd {
			return start, true
		}
	}
	return 0, false
}

func fitsPlaceWindows(p *Place, weekday string, start, svc int) bool {
	for _, w := range placeWindows(p, weekday) {
		if start >= w.Open && start+svc <= w.Close {
			return true
		}
	}
	return false
}

// enforceBudget drops the lowest-scored attractions until the return to the
// depot fits the day budget.
func (r *DayRouter) enforceBudget(ctx context.Context, depot Depot, stops []RoutedStop, weekday string, dayStart, dayEnd int) ([]RoutedStop, routeTotals, error) {
	for {
		propagated, total, ok, err := r.propagate(ctx, depot, stops, weekday, dayStart, dayEnd)
		if err != nil {
			return nil, routeTotals{}, err
		}
		if ok && total.returnMin <= dayEnd {
			return propagated, total, nil
		}
		victim := lowestScoreAttraction(stops)
		if victim < 0 {
			// Only meals left; keep them even if the return runs late.
			return propagated, total, nil
		}
		r.logger.Debug("dropping stop to fit day budget",
			zap.String("poi", stops[victim].Place.ID),
			zap.Int("return_min", total.returnMin))
		stops = append(stops[:victim], stops[victim+1:]...)
	}
}

func lowestScoreAttraction(stops []RoutedStop) int {
	idx := -1
	for i := range stops {
		if stops[i].Role != RoleAttraction {
			continue
		}
		if idx < 0 ||
			stops[i].Score < stops[idx].Score ||
			(stops[i].Score == stops[idx].Score && stops[i].Place.ID > stops[idx].Place.ID) {
			idx = i
		}
	}
	return idx
}

// propagate recomputes times and totals for a stop order. ok is false when a
// stop misses its opening window or meal slot under the new timing.
func (r *DayRouter) propagate(ctx context.Context, depot Depot, stops []RoutedStop, weekday string, dayStart, dayEnd int) ([]RoutedStop, routeTotals, bool, error) {
	out := make([]RoutedStop, len(stops))
	copy(out, stops)

	var total routeTotals
	t := dayStart
	cur := depotPoint(depot)
	ok := true

	for i := range out {
		s := &out[i]
		leg, err := r.oracle.Travel(ctx, cur, placePoint(&s.Place))
		if err != nil {
			return nil, routeTotals{}, false, fmt.Errorf("%w: %v", utils.ErrOracleUnavailable, err)
		}
		total.travelMin += leg.DurationMin
		total.distanceM += leg.DistanceMeters

		arrival := t + leg.DurationMin
		start, fits := earliestServiceStart(&s.Place, weekday, arrival, s.ServiceMin, dayEnd)
		if s.Role == RoleMeal && fits {
			if start < s.Slot.Open {
				start = s.Slot.Open
			}
			fits = start <= s.Slot.Close &&
				start+s.ServiceMin <= dayEnd &&
				fitsPlaceWindows(&s.Place, weekday, start, s.ServiceMin)
		}
		if !fits {
			ok = false
			start = arrival
		}
		s.ArrivalMin = arrival
		s.ServiceStartMin = start
		s.DepartMin = start + s.ServiceMin
		t = s.DepartMin
		cur = placePoint(&s.Place)
	}

	leg, err := r.oracle.Travel(ctx, cur, depotPoint(depot))
	if err != nil {
		return nil, routeTotals{}, false, fmt.Errorf("%w: %v", utils.ErrOracleUnavailable, err)
	}
	total.travelMin += leg.DurationMin
	total.distanceM += leg.DistanceMeters
	total.returnMin = t + leg.DurationMin
	return out, total, ok, nil
}

// improve runs a bounded first-improvement pass over attraction pairs,
// accepting a swap only when the re-timed day stays fully feasible and
// travel strictly drops.
func (r *DayRouter) improve(ctx context.Context, depot Depot, stops []RoutedStop, total routeTotals, weekday string, dayStart, dayEnd int) ([]RoutedStop, routeTotals, error) {
	for iter := 0; iter < r.cfg.ImproveIterations; iter++ {
		improved := false
		for i := 0; i < len(stops) && !improved; i++ {
			if stops[i].Role != RoleAttraction {
				continue
			}
			for j := i + 1; j < len(stops); j++ {
				if stops[j].Role != RoleAttraction {
					continue
				}
				trial := make([]RoutedStop, len(stops))
				copy(trial, stops)
				trial[i], trial[j] = trial[j], trial[i]

				propagated, trialTotal, ok, err := r.propagate(ctx, depot, trial, weekday, dayStart, dayEnd)
				if err != nil {
					return nil, routeTotals{}, err
				}
				if ok && trialTotal.returnMin <= dayEnd && trialTotal.travelMin < total.travelMin {
					stops = propagated
					total = trialTotal
					improved = true
					break
				}
			}
		}
		if !improved {
			break
		}
	}
	return stops, total, nil
}

func depotPoint(d Depot) Point {
	return Point{ID: d.ID, Lat: d.Lat, Lng: d.Lng}
}

func placePoint(p *Place) Point {
	return Point{ID: p.ID, Lat: p.Latitude, Lng: p.Longitude}
}
