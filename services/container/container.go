package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services"
)

// ServiceContainer wires the long-lived shared clients (database pool,
// Redis, AI provider) into the services once at process start.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	aiService    services.InterfaceAIService

	userService    services.InterfaceUserService
	weatherService services.InterfaceWeatherService

	mu sync.RWMutex
}

// NewServiceContainer creates the container and initializes all services.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("configuration is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("redis ping failed: %v, responses will not be cached", err)
		}
	}

	c := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	c.initializeServices()
	return c
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)
	c.aiService = services.NewAIService(c.config)

	c.userService = services.NewUserService(c.db, c.config, c.jwtService)
	c.weatherService = services.NewWeatherService(c.db, c.config, c.aiService)
}

// GetService returns a service by name.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "ai":
		return c.aiService
	case "user":
		return c.userService
	case "weather":
		return c.weatherService
	default:
		return nil
	}
}

// GetDB returns the database connection.
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the application configuration.
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetJWTService returns the JWT service.
func (c *ServiceContainer) GetJWTService() services.InterfaceJWTService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jwtService
}

// GetRedisService returns the cache service, or nil when Redis is disabled.
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.redis == nil {
		return nil
	}
	return c.redisService
}

// GetUserService returns the account service.
func (c *ServiceContainer) GetUserService() services.InterfaceUserService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userService
}

// GetWeatherService returns the weather ingestion/query service.
func (c *ServiceContainer) GetWeatherService() services.InterfaceWeatherService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weatherService
}
