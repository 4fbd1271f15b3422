package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mem "github.com/kahgin/fika-core/pkg/memcache"
	"github.com/kahgin/fika-core/pkg/utils"
)

var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testDepot() Depot {
	return Depot{ID: "h01", Name: "Hotel", Lat: 1.300, Lng: 103.850}
}

func newTestRouter() *DayRouter {
	return NewDayRouter(NewHaversineOracle(25), plannerConfig(), zap.NewNop())
}

// cityPool spreads places a few hundred meters apart around the depot.
func cityPool(nAttractions, nMeals int) DayPool {
	var pool DayPool
	for i := 0; i < nAttractions; i++ {
		p := attraction(fmt.Sprintf("a%02d", i), "nature")
		p.Latitude = 1.300 + float64(i+1)*0.004
		p.Longitude = 103.850 + float64(i+1)*0.003
		pool.Attractions = append(pool.Attractions, scored(p, 0.9-float64(i)*0.05))
	}
	for i := 0; i < nMeals; i++ {
		p := mealPlace(fmt.Sprintf("m%02d", i))
		p.Latitude = 1.302 + float64(i)*0.002
		p.Longitude = 103.848
		pool.Meals = append(pool.Meals, scored(p, 0.5))
	}
	return pool
}

func TestRouteDaySchedulesConsistently(t *testing.T) {
	router := newTestRouter()
	pool := cityPool(4, 3)
	req := baseRequest()

	day, err := router.RouteDay(context.Background(), testDepot(), pool, req, testMonday)
	require.NoError(t, err)
	require.NotEmpty(t, day.Stops)

	cfg := plannerConfig()
	dayEnd := cfg.DayStartMin + cfg.DayBudgetMin[req.Pacing]

	prevDepart := cfg.DayStartMin
	seen := map[string]bool{}
	for _, s := range day.Stops {
		assert.False(t, seen[s.Place.ID], "no place visited twice")
		seen[s.Place.ID] = true

		assert.GreaterOrEqual(t, s.ArrivalMin, prevDepart, "stops run in time order")
		assert.GreaterOrEqual(t, s.ServiceStartMin, s.ArrivalMin, "waiting is allowed, time travel is not")
		assert.Equal(t, s.ServiceStartMin+s.ServiceMin, s.DepartMin)
		assert.LessOrEqual(t, s.DepartMin, dayEnd)
		prevDepart = s.DepartMin
	}
	assert.LessOrEqual(t, day.ReturnMin, dayEnd, "the day ends back at the depot in budget")
	assert.Positive(t, day.TravelMinutes)
	assert.Positive(t, day.DistanceMeters)
}

func TestRouteDayPlacesMealsInWindows(t *testing.T) {
	router := newTestRouter()
	pool := cityPool(5, 4)
	req := baseRequest()

	day, err := router.RouteDay(context.Background(), testDepot(), pool, req, testMonday)
	require.NoError(t, err)

	cfg := plannerConfig()
	mealsSeen := 0
	for _, s := range day.Stops {
		if s.Role != RoleMeal {
			continue
		}
		mealsSeen++
		inLunch := s.ServiceStartMin >= cfg.LunchOpenMin && s.ServiceStartMin <= cfg.LunchCloseMin
		inDinner := s.ServiceStartMin >= cfg.DinnerOpenMin && s.ServiceStartMin <= cfg.DinnerCloseMin
		assert.True(t, inLunch || inDinner,
			"meal at %s is outside both meal windows", utils.FormatHHMM(s.ServiceStartMin))
	}
	assert.GreaterOrEqual(t, mealsSeen, 1)
	assert.LessOrEqual(t, mealsSeen, cfg.MaxMealsPerDay)
}

func TestRouteDayEmptyPool(t *testing.T) {
	router := newTestRouter()

	day, err := router.RouteDay(context.Background(), testDepot(), DayPool{}, baseRequest(), testMonday)
	require.NoError(t, err)
	assert.Empty(t, day.Stops)
	assert.Zero(t, day.TravelMinutes)
	assert.Zero(t, day.DistanceMeters)
}

func TestRouteDayHonorsOpeningHours(t *testing.T) {
	router := newTestRouter()

	lateOpener := attraction("late", "nature")
	lateOpener.Latitude, lateOpener.Longitude = 1.302, 103.851
	lateOpener.Hours = map[string][]TimeWindow{
		"Monday": {{Open: 14 * 60, Close: 18 * 60}},
	}
	closedMonday := attraction("closed", "nature")
	closedMonday.Latitude, closedMonday.Longitude = 1.303, 103.852
	closedMonday.Hours = map[string][]TimeWindow{
		"Tuesday": {{Open: 9 * 60, Close: 18 * 60}},
	}

	pool := DayPool{Attractions: []ScoredPlace{
		scored(lateOpener, 0.9),
		scored(closedMonday, 0.8),
	}}

	day, err := router.RouteDay(context.Background(), testDepot(), pool, baseRequest(), testMonday)
	require.NoError(t, err)

	for _, s := range day.Stops {
		assert.NotEqual(t, "closed", s.Place.ID, "a closed place is never scheduled")
		if s.Place.ID == "late" {
			assert.GreaterOrEqual(t, s.ServiceStartMin, 14*60)
		}
	}
}

func TestRouteDaySkipsDeclaredAlwaysClosed(t *testing.T) {
	router := newTestRouter()

	// Declared hours with no open day at all, as parseOpeningHours produces
	// for an all-closed listing. Not the same as Hours == nil.
	shuttered := attraction("shuttered", "nature")
	shuttered.Latitude, shuttered.Longitude = 1.302, 103.851
	shuttered.Hours = map[string][]TimeWindow{}

	open := attraction("open", "nature")
	open.Latitude, open.Longitude = 1.303, 103.852

	pool := DayPool{Attractions: []ScoredPlace{
		scored(shuttered, 0.9),
		scored(open, 0.8),
	}}

	day, err := router.RouteDay(context.Background(), testDepot(), pool, baseRequest(), testMonday)
	require.NoError(t, err)
	require.NotEmpty(t, day.Stops)
	for _, s := range day.Stops {
		assert.NotEqual(t, "shuttered", s.Place.ID)
	}
}

func TestRouteDayEnforcesBudget(t *testing.T) {
	router := newTestRouter()
	req := baseRequest()
	req.Pacing = "relaxed" // 540 minute budget, 120 minute visits

	// More attractions than a relaxed day can hold.
	pool := cityPool(10, 2)

	day, err := router.RouteDay(context.Background(), testDepot(), pool, req, testMonday)
	require.NoError(t, err)

	cfg := plannerConfig()
	dayEnd := cfg.DayStartMin + cfg.DayBudgetMin[req.Pacing]
	assert.LessOrEqual(t, day.ReturnMin, dayEnd)
	assert.Less(t, len(day.Stops), 12, "some stops were dropped to fit the budget")
}

func TestRouteDayDeterministic(t *testing.T) {
	router := newTestRouter()
	pool := cityPool(6, 3)
	req := baseRequest()

	first, err := router.RouteDay(context.Background(), testDepot(), pool, req, testMonday)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := router.RouteDay(context.Background(), testDepot(), pool, req, testMonday)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

type failingOracle struct{}

func (failingOracle) Travel(context.Context, Point, Point) (mem.TravelLeg, error) {
	return mem.TravelLeg{}, fmt.Errorf("routing backend down")
}

func TestRouteDayOracleFailure(t *testing.T) {
	router := NewDayRouter(failingOracle{}, plannerConfig(), zap.NewNop())
	pool := cityPool(2, 1)

	_, err := router.RouteDay(context.Background(), testDepot(), pool, baseRequest(), testMonday)
	assert.ErrorIs(t, err, utils.ErrOracleUnavailable)
}
