package main

import (
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/FelipeAraujoBS/weather-monitoring-system/collector"
	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
	"github.com/FelipeAraujoBS/weather-monitoring-system/routes"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services/container"
	"github.com/FelipeAraujoBS/weather-monitoring-system/worker"
)

// @title           Weather Monitoring System API
// @version         1.0
// @description     REST API for weather observation ingestion, history, statistics and AI-generated insights.

// @host      localhost:3001
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	if err := config.SetupLogger(); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	if err := godotenv.Load(); err != nil {
		config.Warning("No .env file found, using environment variables")
	}

	cfg := config.GetConfig()

	db, err := initDB(cfg)
	if err != nil {
		config.Error("Failed to connect to database: %v", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.GetRedisAddr(),
			DB:   cfg.RedisDB,
		})
	}

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// Queue ingestion and the built-in collector are both optional; either
	// one (or neither) can feed the record store.
	if cfg.RabbitMQURL != "" {
		consumer := worker.NewConsumer(cfg, serviceContainer.GetWeatherService())
		go consumer.Start()
	}

	if cfg.CollectorLocations != "" {
		scheduler, err := collector.NewScheduler(cfg, serviceContainer.GetWeatherService())
		if err != nil {
			config.Error("Collector disabled: %v", err)
		} else if err := scheduler.Start(); err != nil {
			config.Error("Collector disabled: %v", err)
		}
	}

	r := routes.SetupRouter(db, cfg, serviceContainer)

	config.Info("Server starting on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		config.Error("Failed to start server: %v", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.WeatherRecord{}, &models.User{}); err != nil {
		return nil, err
	}

	return db, nil
}
