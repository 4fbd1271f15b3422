package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/cmd/fx/catalog_fx"
	"github.com/kahgin/fika-core/cmd/fx/config_fx"
	"github.com/kahgin/fika-core/cmd/fx/db_fx"
	"github.com/kahgin/fika-core/cmd/fx/matrix_fx"
	"github.com/kahgin/fika-core/cmd/fx/plan_fx"
	"github.com/kahgin/fika-core/internal/api/controllers"
	"github.com/kahgin/fika-core/pkg/config"
	"github.com/kahgin/fika-core/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		catalog_fx.Module,
		matrix_fx.Module,
		plan_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	poisController *controllers.POIsController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, poisController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	poisController *controllers.POIsController,
	itineraryController *controllers.ItineraryController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	itineraries := v1.Group("/itineraries")
	itineraries.POST("", itineraryController.BuildItinerary)
	itineraries.POST("/selection", itineraryController.BuildSelection)

	pois := v1.Group("/pois")
	pois.GET("/:destination", poisController.GetPoisByDestination)
	pois.GET("/id/:id", poisController.GetPoiById)

	admin := v1.Group("/admin/pois")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	admin.POST("", poisController.CreatePoi)
	admin.PUT("", poisController.UpdatePoi)
	admin.DELETE("/:id", poisController.DeletePoi)
}
