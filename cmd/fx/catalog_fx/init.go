package catalog_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kahgin/fika-core/internal/api/controllers"
	"github.com/kahgin/fika-core/internal/repositories"
	"github.com/kahgin/fika-core/internal/services"
)

var Module = fx.Provide(
	providePOIRepository,
	provideCatalogGateway,
	providePOIService,
	providePOIsController,
)

func providePOIRepository(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideCatalogGateway(repo repositories.POIRepository, logger *zap.Logger) services.CatalogGateway {
	return services.NewCatalogGateway(repo, logger)
}

func providePOIService(repo repositories.POIRepository, logger *zap.Logger) services.POIServiceInterface {
	return services.NewPOIService(repo, logger)
}

func providePOIsController(poiService services.POIServiceInterface) *controllers.POIsController {
	return controllers.NewPOIsController(poiService)
}
