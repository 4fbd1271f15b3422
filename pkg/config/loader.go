package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from configs/config.yaml (optional), layered
// under environment variables such as DATABASE_URL or PLANNER_MAX_THEMES.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching files or the
// environment. Tests build on this.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config unmarshal: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("database.url", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("oracle.osrm_enabled", false)
	v.SetDefault("oracle.osrm_url", "http://localhost:5000")
	v.SetDefault("oracle.timeout_seconds", 15)
	v.SetDefault("oracle.speed_kmh", 25.0)
	v.SetDefault("oracle.cache_ttl_hours", 7*24)

	v.SetDefault("planner.interest_weight", 0.30)
	v.SetDefault("planner.cost_weight", 0.20)
	v.SetDefault("planner.popularity_weight", 0.10)
	v.SetDefault("planner.child_weight", 0.10)
	v.SetDefault("planner.dietary_weight", 0.10)
	v.SetDefault("planner.pet_weight", 0.10)
	v.SetDefault("planner.access_weight", 0.10)
	v.SetDefault("planner.duration_weight", map[string]float64{
		"relaxed": 0.05, "balanced": 0.10, "packed": 0.20,
	})
	v.SetDefault("planner.cost_tier_scale", map[string]float64{
		"budget": 1.5, "sensible": 1.0, "premium": 0.75,
	})
	v.SetDefault("planner.budget_target", map[string]float64{
		"budget": 1.0, "sensible": 2.0, "premium": 3.0,
	})

	v.SetDefault("planner.fallback_themes", []string{"shopping", "cultural_history", "nature"})
	v.SetDefault("planner.max_themes", 5)
	v.SetDefault("planner.places_per_day", map[string]int{
		"relaxed": 8, "balanced": 10, "packed": 12,
	})
	v.SetDefault("planner.theme_share_cap", 0.5)

	v.SetDefault("planner.attraction_quota_per_day", 12)
	v.SetDefault("planner.attraction_quota_cap", 300)
	v.SetDefault("planner.meal_quota_per_day", 5)
	v.SetDefault("planner.meal_quota_cap", 50)
	v.SetDefault("planner.stay_quota_extra", 5)
	v.SetDefault("planner.stay_quota_cap", 15)

	v.SetDefault("planner.day_start_min", 9*60)
	v.SetDefault("planner.day_budget_min", map[string]int{
		"relaxed": 9 * 60, "balanced": 11 * 60, "packed": 13 * 60,
	})
	v.SetDefault("planner.attraction_service_min", map[string]int{
		"relaxed": 120, "balanced": 90, "packed": 60,
	})
	v.SetDefault("planner.meal_service_min", map[string]int{
		"relaxed": 75, "balanced": 60, "packed": 45,
	})
	v.SetDefault("planner.lunch_open_min", 12*60)
	v.SetDefault("planner.lunch_close_min", 14*60)
	v.SetDefault("planner.dinner_open_min", 18*60)
	v.SetDefault("planner.dinner_close_min", 21*60)
	v.SetDefault("planner.max_meals_per_day", 3)
	v.SetDefault("planner.improve_iterations", 40)
}
