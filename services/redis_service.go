package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
)

// Cache TTLs. Latest is short because the collector may ingest at any time;
// stats tolerate a few minutes of staleness.
const (
	latestCacheTTL = time.Minute
	statsCacheTTL  = 5 * time.Minute
)

// InterfaceRedisService is the JSON cache used by the read endpoints.
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(keys ...string) error
	CacheLatest(city string, record interface{}) error
	GetLatest(city string, dest interface{}) error
	InvalidateLatest(city string) error
	CacheStats(city string, days int, stats interface{}) error
	GetStats(city string, days int, dest interface{}) error
}

// RedisService handles Redis operations.
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service.
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set stores a JSON-encoded value with expiration.
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get loads a JSON-encoded value into dest.
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Delete removes keys.
func (s *RedisService) Delete(keys ...string) error {
	return s.Client.Del(s.Ctx, keys...).Err()
}

func latestKey(city string) string {
	return "weather:latest:" + city
}

func statsKey(city string, days int) string {
	return fmt.Sprintf("weather:stats:%s:%d", city, days)
}

// CacheLatest caches the most recent record for a city filter.
func (s *RedisService) CacheLatest(city string, record interface{}) error {
	return s.Set(latestKey(city), record, latestCacheTTL)
}

// GetLatest reads the cached most recent record for a city filter.
func (s *RedisService) GetLatest(city string, dest interface{}) error {
	return s.Get(latestKey(city), dest)
}

// InvalidateLatest drops the cached latest record for a city and for the
// unfiltered query; called on every ingest.
func (s *RedisService) InvalidateLatest(city string) error {
	return s.Delete(latestKey(city), latestKey(""))
}

// CacheStats caches a computed stats window.
func (s *RedisService) CacheStats(city string, days int, stats interface{}) error {
	return s.Set(statsKey(city, days), stats, statsCacheTTL)
}

// GetStats reads a cached stats window.
func (s *RedisService) GetStats(city string, days int, dest interface{}) error {
	return s.Get(statsKey(city, days), dest)
}
