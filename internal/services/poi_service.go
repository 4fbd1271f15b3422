package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/models/db_models"
	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/internal/models/response_models"
	"github.com/kahgin/fika-core/internal/repositories"
	"github.com/kahgin/fika-core/pkg/utils"
)

type POIServiceInterface interface {
	GetPOIById(ctx context.Context, id string) (response_models.POI, error)
	GetPoisByDestination(ctx context.Context, destination string, page, pageSize int) ([]response_models.POI, error)
	CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (string, error)
	UpdatePoi(ctx context.Context, req request_models.UpdatePoiRequest) error
	DeletePoi(ctx context.Context, id uuid.UUID) error
}

type PoiService struct {
	poiRepository repositories.POIRepository
	logger        *zap.Logger
}

func NewPOIService(poiRepository repositories.POIRepository, logger *zap.Logger) POIServiceInterface {
	return &PoiService{
		poiRepository: poiRepository,
		logger:        logger,
	}
}

func (p *PoiService) GetPOIById(ctx context.Context, id string) (response_models.POI, error) {
	poi, err := p.poiRepository.GetByID(ctx, id)
	if err != nil {
		p.logger.Error("fetch poi failed", zap.String("id", id), zap.Error(err))
		return response_models.POI{}, utils.ErrDatabaseError
	}
	if poi == nil {
		return response_models.POI{}, utils.ErrPOINotFound
	}
	return toPOIResponse(poi), nil
}

func (p *PoiService) GetPoisByDestination(ctx context.Context, destination string, page, pageSize int) ([]response_models.POI, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 200 {
		return nil, utils.ErrInvalidPageSize
	}

	pois, err := p.poiRepository.ListByDestination(ctx, destination, page, pageSize)
	if err != nil {
		p.logger.Error("list pois failed", zap.String("destination", destination), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.POI, 0, len(pois))
	for i := range pois {
		out = append(out, toPOIResponse(&pois[i]))
	}
	return out, nil
}

func (p *PoiService) CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (string, error) {
	row := &db_models.POI{
		Name:                 req.Name,
		Destination:          req.Destination,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		Roles:                req.Roles,
		Themes:               req.Themes,
		Restrictions:         req.Restrictions,
		OpeningHours:         encodeHours(req.OpeningHours),
		VisitMinutes:         req.VisitMinutes,
		PriceLevel:           req.PriceLevel,
		Rating:               req.Rating,
		ReviewCount:          req.ReviewCount,
		WheelchairAccessible: req.WheelchairAccessible,
		KidsFriendly:         req.KidsFriendly,
		PetsFriendly:         req.PetsFriendly,
		HalalFood:            req.HalalFood,
		Status:               "active",
	}

	id, err := p.poiRepository.CreatePoi(ctx, row)
	if err != nil {
		p.logger.Error("create poi failed", zap.String("name", req.Name), zap.Error(err))
		return "", utils.ErrDatabaseError
	}
	return id.String(), nil
}

func (p *PoiService) UpdatePoi(ctx context.Context, req request_models.UpdatePoiRequest) error {
	existing, err := p.poiRepository.GetByID(ctx, req.ID.String())
	if err != nil {
		p.logger.Error("fetch poi failed", zap.String("id", req.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrPOINotFound
	}

	existing.Name = req.Name
	existing.Destination = req.Destination
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.Roles = req.Roles
	existing.Themes = req.Themes
	existing.Restrictions = req.Restrictions
	existing.OpeningHours = encodeHours(req.OpeningHours)
	existing.VisitMinutes = req.VisitMinutes
	existing.PriceLevel = req.PriceLevel
	existing.Rating = req.Rating
	existing.ReviewCount = req.ReviewCount
	existing.WheelchairAccessible = req.WheelchairAccessible
	existing.KidsFriendly = req.KidsFriendly
	existing.PetsFriendly = req.PetsFriendly
	existing.HalalFood = req.HalalFood

	if err := p.poiRepository.UpdatePoi(ctx, existing); err != nil {
		p.logger.Error("update poi failed", zap.String("id", req.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PoiService) DeletePoi(ctx context.Context, id uuid.UUID) error {
	existing, err := p.poiRepository.GetByID(ctx, id.String())
	if err != nil {
		p.logger.Error("fetch poi failed", zap.String("id", id.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrPOINotFound
	}

	if err := p.poiRepository.Delete(ctx, id); err != nil {
		p.logger.Error("delete poi failed", zap.String("id", id.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func toPOIResponse(poi *db_models.POI) response_models.POI {
	return response_models.POI{
		ID:                   poi.ID.String(),
		Name:                 poi.Name,
		Destination:          poi.Destination,
		Latitude:             poi.Latitude,
		Longitude:            poi.Longitude,
		Roles:                poi.Roles,
		Themes:               poi.Themes,
		Restrictions:         poi.Restrictions,
		OpeningHours:         decodeHours(poi.OpeningHours),
		VisitMinutes:         poi.VisitMinutes,
		PriceLevel:           poi.PriceLevel,
		Rating:               poi.Rating,
		ReviewCount:          poi.ReviewCount,
		WheelchairAccessible: poi.WheelchairAccessible,
		KidsFriendly:         poi.KidsFriendly,
		PetsFriendly:         poi.PetsFriendly,
		HalalFood:            poi.HalalFood,
	}
}

func encodeHours(hours map[string][]string) string {
	if len(hours) == 0 {
		return ""
	}
	raw, err := json.Marshal(hours)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeHours(raw string) map[string][]string {
	if raw == "" {
		return nil
	}
	var hours map[string][]string
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil
	}
	return hours
}
