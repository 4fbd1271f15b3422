package services

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/models/db_models"
	"github.com/kahgin/fika-core/internal/repositories"
	"github.com/kahgin/fika-core/pkg/utils"
)

// CatalogQuota bounds one candidate fetch, per role.
type CatalogQuota struct {
	Attractions    int
	Meals          int
	Accommodations int
}

// CatalogGateway is the planner's view of the POI catalog. The production
// implementation is backed by Postgres; tests inject fakes.
type CatalogGateway interface {
	// FetchCandidates returns a bounded, deduplicated candidate pool for a
	// destination. Attraction candidates are filtered by theme; meal and
	// accommodation candidates are not.
	FetchCandidates(ctx context.Context, destination string, themes []string, quota CatalogQuota) ([]Place, error)

	// TopThemes ranks the destination's themes by overall popularity.
	TopThemes(ctx context.Context, destination string, limit int) ([]string, error)
}

type catalogGateway struct {
	repo   repositories.POIRepository
	logger *zap.Logger
}

func NewCatalogGateway(repo repositories.POIRepository, logger *zap.Logger) CatalogGateway {
	return &catalogGateway{repo: repo, logger: logger}
}

func (g *catalogGateway) FetchCandidates(ctx context.Context, destination string, themes []string, quota CatalogQuota) ([]Place, error) {
	type roleFetch struct {
		role   string
		themes []string
		limit  int
	}
	fetches := []roleFetch{
		{RoleAttraction, themes, quota.Attractions},
		{RoleMeal, nil, quota.Meals},
		{RoleAccommodation, nil, quota.Accommodations},
	}

	seen := make(map[string]bool)
	var out []Place
	for _, f := range fetches {
		if f.limit <= 0 {
			continue
		}
		rows, err := g.repo.ListCandidates(ctx, destination, f.role, f.themes, f.limit)
		if err != nil {
			g.logger.Error("catalog fetch failed",
				zap.String("destination", destination),
				zap.String("role", f.role),
				zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		for i := range rows {
			p := toPlace(&rows[i])
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}

	// Stable order for a given snapshot regardless of fetch interleaving.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *catalogGateway) TopThemes(ctx context.Context, destination string, limit int) ([]string, error) {
	themes, err := g.repo.TopThemes(ctx, destination, limit)
	if err != nil {
		g.logger.Error("top themes query failed",
			zap.String("destination", destination),
			zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return themes, nil
}

func toPlace(row *db_models.POI) Place {
	return Place{
		ID:                   row.ID.String(),
		Name:                 row.Name,
		Latitude:             row.Latitude,
		Longitude:            row.Longitude,
		Roles:                row.Roles,
		Themes:               row.Themes,
		Restrictions:         row.Restrictions,
		Hours:                parseOpeningHours(row.OpeningHours),
		VisitMinutes:         row.VisitMinutes,
		PriceLevel:           row.PriceLevel,
		Rating:               row.Rating,
		ReviewCount:          row.ReviewCount,
		WheelchairAccessible: row.WheelchairAccessible,
		KidsFriendly:         row.KidsFriendly,
		PetsFriendly:         row.PetsFriendly,
		HalalFood:            row.HalalFood,
	}
}

// parseOpeningHours decodes the catalog's weekday→labels JSON into minute
// windows. Unparseable labels are skipped; a fully absent or broken value
// yields nil, which means "no declared hours" (role defaults apply later).
// Declared hours where every day is closed yield a non-nil empty map, so
// the place stays closed instead of falling back to role defaults.
func parseOpeningHours(raw string) map[string][]TimeWindow {
	if raw == "" {
		return nil
	}
	var byDay map[string][]string
	if err := json.Unmarshal([]byte(raw), &byDay); err != nil {
		return nil
	}
	if len(byDay) == 0 {
		return nil
	}

	out := make(map[string][]TimeWindow, len(byDay))
	for day, labels := range byDay {
		var windows []TimeWindow
		for _, label := range labels {
			if open, closeAt, ok := utils.ParseHoursLabel(label); ok {
				windows = append(windows, TimeWindow{Open: open, Close: closeAt})
			}
		}
		if len(windows) > 0 {
			sort.Slice(windows, func(i, j int) bool { return windows[i].Open < windows[j].Open })
			out[day] = windows
		}
	}
	return out
}
