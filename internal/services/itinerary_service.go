package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/internal/models/response_models"
	"github.com/kahgin/fika-core/pkg/config"
	"github.com/kahgin/fika-core/pkg/utils"
)

// centroidDepotID marks the synthetic depot used when the selection has no
// accommodation to anchor the days on.
const centroidDepotID = "depot:centroid"

type ItineraryServiceInterface interface {
	// BuildSelection runs the scoring stage only and returns the ranked pool.
	BuildSelection(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.SelectionResponse, error)

	// BuildItinerary runs the full pipeline: selection, day partitioning and
	// per-day routing.
	BuildItinerary(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
}

type itineraryService struct {
	selector *Selector
	router   *DayRouter
	cfg      *config.PlannerConfig
	logger   *zap.Logger
}

func NewItineraryService(selector *Selector, router *DayRouter, cfg *config.PlannerConfig, logger *zap.Logger) ItineraryServiceInterface {
	return &itineraryService{selector: selector, router: router, cfg: cfg, logger: logger}
}

func (s *itineraryService) BuildSelection(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.SelectionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sel, err := s.selector.Select(ctx, req)
	if err != nil {
		return nil, err
	}

	places := make([]response_models.ScoredPOI, 0, len(sel.Places))
	for i := range sel.Places {
		places = append(places, toScoredPOI(&sel.Places[i], req.Destination))
	}
	return &response_models.SelectionResponse{
		Status:     "ok",
		Places:     places,
		RouteOrder: []string{},
		Meta: response_models.SelectionMeta{
			SelectedThemes: sel.Themes,
			CountIn:        sel.CountIn,
			CountOut:       sel.CountOut,
		},
	}, nil
}

func (s *itineraryService) BuildItinerary(ctx context.Context, req *request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sel, err := s.selector.Select(ctx, req)
	if err != nil {
		return nil, err
	}

	depot := chooseDepot(sel)
	pools := PartitionDays(sel, req.NumDays)
	start := req.Start()

	days := make([]*DayRoute, 0, req.NumDays)
	for d := 0; d < req.NumDays; d++ {
		date := start.AddDate(0, 0, d)
		route, err := s.router.RouteDay(ctx, depot, pools[d], req, date)
		if err != nil {
			s.logger.Error("day routing failed",
				zap.String("destination", req.Destination),
				zap.Time("date", date),
				zap.Error(err))
			return nil, err
		}
		days = append(days, route)
	}

	for _, v := range AuditItinerary(days, s.cfg, req.Pacing) {
		s.logger.Warn("itinerary audit", zap.String("violation", v))
	}

	resp := &response_models.ItineraryResponse{
		Status:     "ok",
		Days:       make([]response_models.DayPlan, 0, len(days)),
		RouteOrder: []string{},
		Meta: response_models.SelectionMeta{
			SelectedThemes: sel.Themes,
			CountIn:        sel.CountIn,
			CountOut:       sel.CountOut,
		},
	}

	var totalMeters int
	for _, day := range days {
		plan := toDayPlan(day, depot, s.cfg.DayStartMin)
		resp.Days = append(resp.Days, plan)
		resp.TotalTime += day.TravelMinutes
		totalMeters += day.DistanceMeters
		for i := range day.Stops {
			resp.RouteOrder = append(resp.RouteOrder, day.Stops[i].Place.ID)
		}
	}
	resp.TotalDistance = float64(totalMeters) / 1000.0

	s.logger.Info("itinerary built",
		zap.String("destination", req.Destination),
		zap.Int("days", len(days)),
		zap.Float64("total_km", resp.TotalDistance),
		zap.Int("travel_min", resp.TotalTime))
	return resp, nil
}

// chooseDepot anchors the trip at the best-ranked accommodation, or at the
// centroid of the selected places when none was selected.
func chooseDepot(sel *Selection) Depot {
	for i := range sel.Places {
		sp := &sel.Places[i]
		if sp.HasRole(RoleAccommodation) {
			return Depot{ID: sp.ID, Name: sp.Name, Lat: sp.Latitude, Lng: sp.Longitude}
		}
	}

	var lat, lng float64
	for i := range sel.Places {
		lat += sel.Places[i].Latitude
		lng += sel.Places[i].Longitude
	}
	if n := len(sel.Places); n > 0 {
		lat /= float64(n)
		lng /= float64(n)
	}
	return Depot{ID: centroidDepotID, Name: "City center", Lat: lat, Lng: lng}
}

func toDayPlan(day *DayRoute, depot Depot, dayStartMin int) response_models.DayPlan {
	stops := make([]response_models.Stop, 0, len(day.Stops)+2)
	stops = append(stops, depotStop(depot, dayStartMin))
	for i := range day.Stops {
		s := &day.Stops[i]
		stops = append(stops, response_models.Stop{
			PoiID:        s.Place.ID,
			Name:         s.Place.Name,
			Role:         s.Role,
			Arrival:      utils.FormatHHMM(s.ArrivalMin),
			StartService: utils.FormatHHMM(s.ServiceStartMin),
			Depart:       utils.FormatHHMM(s.DepartMin),
		})
	}
	stops = append(stops, depotStop(depot, day.ReturnMin))

	return response_models.DayPlan{
		Date:           day.Date.Format("2006-01-02"),
		Stops:          stops,
		Meals:          day.MealCount(),
		TravelMinutes:  day.TravelMinutes,
		DistanceMeters: day.DistanceMeters,
	}
}

func depotStop(depot Depot, atMin int) response_models.Stop {
	t := utils.FormatHHMM(atMin)
	return response_models.Stop{
		PoiID:        depot.ID,
		Name:         depot.Name,
		Role:         response_models.StopRoleHotel,
		Arrival:      t,
		StartService: t,
		Depart:       t,
	}
}

func toScoredPOI(sp *ScoredPlace, destination string) response_models.ScoredPOI {
	return response_models.ScoredPOI{
		POI: response_models.POI{
			ID:                   sp.ID,
			Name:                 sp.Name,
			Destination:          destination,
			Latitude:             sp.Latitude,
			Longitude:            sp.Longitude,
			Roles:                sp.Roles,
			Themes:               sp.Themes,
			Restrictions:         sp.Restrictions,
			VisitMinutes:         sp.VisitMinutes,
			PriceLevel:           sp.PriceLevel,
			Rating:               sp.Rating,
			ReviewCount:          sp.ReviewCount,
			WheelchairAccessible: sp.WheelchairAccessible,
			KidsFriendly:         sp.KidsFriendly,
			PetsFriendly:         sp.PetsFriendly,
			HalalFood:            sp.HalalFood,
		},
		Score:         sp.Score,
		MatchedThemes: sp.MatchedThemes,
	}
}
