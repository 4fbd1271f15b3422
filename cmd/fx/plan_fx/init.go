package plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/internal/api/controllers"
	"github.com/kahgin/fika-core/internal/services"
	"github.com/kahgin/fika-core/pkg/config"
)

var Module = fx.Provide(
	provideScorer,
	provideSelector,
	provideDayRouter,
	provideItineraryService,
	provideItineraryController,
)

func provideScorer(cfg *config.PlannerConfig) *services.Scorer {
	return services.NewScorer(cfg)
}

func provideSelector(catalog services.CatalogGateway, scorer *services.Scorer, cfg *config.PlannerConfig, logger *zap.Logger) *services.Selector {
	return services.NewSelector(catalog, scorer, cfg, logger)
}

func provideDayRouter(oracle services.DistanceOracle, cfg *config.PlannerConfig, logger *zap.Logger) *services.DayRouter {
	return services.NewDayRouter(oracle, cfg, logger)
}

func provideItineraryService(selector *services.Selector, router *services.DayRouter, cfg *config.PlannerConfig, logger *zap.Logger) services.ItineraryServiceInterface {
	return services.NewItineraryService(selector, router, cfg, logger)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
