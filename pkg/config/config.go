package config

// Runtime configuration for the fika-core service. Policy parameters of the
// planner (score weights, day budgets, quotas) live here rather than in code
// so they can be tuned per deployment and overridden in tests.

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OracleConfig controls the travel time/distance estimator.
type OracleConfig struct {
	OSRMEnabled    bool    `mapstructure:"osrm_enabled"`
	OSRMURL        string  `mapstructure:"osrm_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	SpeedKmh       float64 `mapstructure:"speed_kmh"`
	CacheTTLHours  int     `mapstructure:"cache_ttl_hours"`
}

// PlannerConfig holds the selection and routing policy. Per-tier values are
// keyed by the request enums ("budget"/"sensible"/"premium" and
// "relaxed"/"balanced"/"packed"); lookups only, never iterated.
type PlannerConfig struct {
	// Base utility weights, renormalized over the dimensions that apply
	// to a given request.
	InterestWeight   float64 `mapstructure:"interest_weight"`
	CostWeight       float64 `mapstructure:"cost_weight"`
	PopularityWeight float64 `mapstructure:"popularity_weight"`
	ChildWeight      float64 `mapstructure:"child_weight"`
	DietaryWeight    float64 `mapstructure:"dietary_weight"`
	PetWeight        float64 `mapstructure:"pet_weight"`
	AccessWeight     float64 `mapstructure:"access_weight"`

	DurationWeight map[string]float64 `mapstructure:"duration_weight"` // by pacing
	CostTierScale  map[string]float64 `mapstructure:"cost_tier_scale"` // by budget tier
	BudgetTarget   map[string]float64 `mapstructure:"budget_target"`   // by budget tier, price level 0..4

	// Selection policy.
	FallbackThemes []string       `mapstructure:"fallback_themes"`
	MaxThemes      int            `mapstructure:"max_themes"`
	PlacesPerDay   map[string]int `mapstructure:"places_per_day"` // by pacing
	ThemeShareCap  float64        `mapstructure:"theme_share_cap"`

	// Catalog fetch quotas (per trip day, with absolute caps).
	AttractionQuotaPerDay int `mapstructure:"attraction_quota_per_day"`
	AttractionQuotaCap    int `mapstructure:"attraction_quota_cap"`
	MealQuotaPerDay       int `mapstructure:"meal_quota_per_day"`
	MealQuotaCap          int `mapstructure:"meal_quota_cap"`
	StayQuotaExtra        int `mapstructure:"stay_quota_extra"`
	StayQuotaCap          int `mapstructure:"stay_quota_cap"`

	// Routing policy. Times are minutes from midnight or plain minutes.
	DayStartMin          int            `mapstructure:"day_start_min"`
	DayBudgetMin         map[string]int `mapstructure:"day_budget_min"`         // by pacing
	AttractionServiceMin map[string]int `mapstructure:"attraction_service_min"` // by pacing
	MealServiceMin       map[string]int `mapstructure:"meal_service_min"`       // by pacing
	LunchOpenMin         int            `mapstructure:"lunch_open_min"`
	LunchCloseMin        int            `mapstructure:"lunch_close_min"`
	DinnerOpenMin        int            `mapstructure:"dinner_open_min"`
	DinnerCloseMin       int            `mapstructure:"dinner_close_min"`
	MaxMealsPerDay       int            `mapstructure:"max_meals_per_day"`
	ImproveIterations    int            `mapstructure:"improve_iterations"`
}
