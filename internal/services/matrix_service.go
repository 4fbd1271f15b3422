package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kahgin/fika-core/pkg/config"
	mem "github.com/kahgin/fika-core/pkg/memcache"
)

// Point is a routable location with a stable ID.
type Point struct {
	ID  string
	Lat float64
	Lng float64
}

// DistanceOracle estimates the travel leg between two points.
type DistanceOracle interface {
	Travel(ctx context.Context, from, to Point) (mem.TravelLeg, error)
}

// --------- Haversine estimator ---------

const defaultSpeedKmh = 25.0

type HaversineOracle struct {
	SpeedKmh float64
}

func NewHaversineOracle(speedKmh float64) *HaversineOracle {
	if speedKmh <= 0 {
		speedKmh = defaultSpeedKmh
	}
	return &HaversineOracle{SpeedKmh: speedKmh}
}

func (o *HaversineOracle) Travel(_ context.Context, from, to Point) (mem.TravelLeg, error) {
	meters := HaversineMeters(from.Lat, from.Lng, to.Lat, to.Lng)
	minutes := int(math.Round(meters / 1000.0 / o.SpeedKmh * 60.0))
	return mem.TravelLeg{
		DistanceMeters: int(math.Round(meters)),
		DurationMin:    minutes,
	}, nil
}

// HaversineMeters is the great-circle distance between two coordinates.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusM = 6371000.0
	rad := math.Pi / 180.0

	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(a))
}

// --------- OSRM route client ---------

type OSRMClient struct {
	HTTP    *http.Client
	BaseURL string
	Profile string // "driving"
	logger  *zap.Logger
}

func NewOSRMClient(cfg config.OracleConfig, logger *zap.Logger) *OSRMClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OSRMClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: cfg.OSRMURL,
		Profile: "driving",
		logger:  logger,
	}
}

func (c *OSRMClient) Travel(ctx context.Context, from, to Point) (mem.TravelLeg, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return mem.TravelLeg{}, fmt.Errorf("osrm base url: %w", err)
	}
	base.Path = fmt.Sprintf("/route/v1/%s/%f,%f;%f,%f",
		c.Profile, from.Lng, from.Lat, to.Lng, to.Lat)
	q := url.Values{}
	q.Set("overview", "false")
	base.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return mem.TravelLeg{}, fmt.Errorf("osrm request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return mem.TravelLeg{}, fmt.Errorf("osrm http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return mem.TravelLeg{}, fmt.Errorf("osrm bad status: %s", resp.Status)
	}

	var payload struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mem.TravelLeg{}, fmt.Errorf("osrm decode: %w", err)
	}
	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return mem.TravelLeg{}, fmt.Errorf("osrm no route: code=%s", payload.Code)
	}

	r := payload.Routes[0]
	return mem.TravelLeg{
		DistanceMeters: int(r.Distance + 0.5),
		DurationMin:    int(math.Round(r.Duration / 60.0)),
	}, nil
}

// --------- Fallback composition ---------

// FallbackOracle tries the primary estimator first and quietly falls back
// when it fails, so a flaky routing backend degrades estimates instead of
// failing whole plans.
type FallbackOracle struct {
	Primary  DistanceOracle
	Fallback DistanceOracle
	logger   *zap.Logger
}

func NewFallbackOracle(primary, fallback DistanceOracle, logger *zap.Logger) *FallbackOracle {
	return &FallbackOracle{Primary: primary, Fallback: fallback, logger: logger}
}

func (o *FallbackOracle) Travel(ctx context.Context, from, to Point) (mem.TravelLeg, error) {
	leg, err := o.Primary.Travel(ctx, from, to)
	if err == nil {
		return leg, nil
	}
	o.logger.Warn("primary travel estimate failed, using fallback",
		zap.String("from", from.ID),
		zap.String("to", to.ID),
		zap.Error(err))
	return o.Fallback.Travel(ctx, from, to)
}

// --------- Pair cache read-through ---------

type CachedOracle struct {
	base  DistanceOracle
	cache mem.LegCache
	ttl   time.Duration
	mode  string
}

func NewCachedOracle(base DistanceOracle, cache mem.LegCache, ttl time.Duration) *CachedOracle {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CachedOracle{base: base, cache: cache, ttl: ttl, mode: "driving"}
}

func (o *CachedOracle) Travel(ctx context.Context, from, to Point) (mem.TravelLeg, error) {
	if from.ID == to.ID {
		return mem.TravelLeg{}, nil
	}
	key := mem.LegKey{Mode: o.mode, From: from.ID, To: to.ID}
	if leg, ok := o.cache.Get(ctx, key); ok {
		return leg, nil
	}
	leg, err := o.base.Travel(ctx, from, to)
	if err != nil {
		return mem.TravelLeg{}, err
	}
	o.cache.Set(ctx, key, leg, o.ttl)
	return leg, nil
}

// --------- Redis-backed leg cache ---------

// RedisLegCache shares travel legs across instances. Errors degrade to a
// cache miss; the leg is recomputed.
type RedisLegCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisLegCache(client *redis.Client, logger *zap.Logger) *RedisLegCache {
	return &RedisLegCache{client: client, logger: logger}
}

func legRedisKey(key mem.LegKey) string {
	return fmt.Sprintf("leg:%s:%s:%s", key.Mode, key.From, key.To)
}

func (c *RedisLegCache) Get(ctx context.Context, key mem.LegKey) (mem.TravelLeg, bool) {
	raw, err := c.client.Get(ctx, legRedisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("leg cache read failed", zap.Error(err))
		}
		return mem.TravelLeg{}, false
	}
	var leg mem.TravelLeg
	if err := json.Unmarshal(raw, &leg); err != nil {
		return mem.TravelLeg{}, false
	}
	return leg, true
}

func (c *RedisLegCache) Set(ctx context.Context, key mem.LegKey, leg mem.TravelLeg, ttl time.Duration) {
	raw, err := json.Marshal(leg)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, legRedisKey(key), raw, ttl).Err(); err != nil {
		c.logger.Warn("leg cache write failed", zap.Error(err))
	}
}

// BuildOracle assembles the travel estimator from configuration: a haversine
// baseline, optionally routed through OSRM, with a read-through pair cache.
func BuildOracle(cfg config.OracleConfig, cache mem.LegCache, logger *zap.Logger) DistanceOracle {
	var base DistanceOracle = NewHaversineOracle(cfg.SpeedKmh)
	if cfg.OSRMEnabled && cfg.OSRMURL != "" {
		base = NewFallbackOracle(NewOSRMClient(cfg, logger), base, logger)
	}
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	return NewCachedOracle(base, cache, ttl)
}
