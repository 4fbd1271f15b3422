package config_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/pkg/config"
)

var Module = fx.Options(
	fx.Provide(provideConfig, providePlannerConfig, provideLogger),
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func providePlannerConfig(cfg *config.Config) *config.PlannerConfig {
	return &cfg.Planner
}

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if cfg.Server.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}
