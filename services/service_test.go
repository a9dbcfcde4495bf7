package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.WeatherRecord{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:        "test-secret",
		JWTExpireHours:      1,
		HistoryDefaultLimit: 10,
		HistoryMaxLimit:     100,
		AIModel:             "gemini-2.5-flash",
		AITimeout:           5 * time.Second,
	}
}

func makeRecord(city string, ts time.Time, temp, humidity, uv float64) *models.WeatherRecord {
	return &models.WeatherRecord{
		Timestamp: ts,
		Location: models.Location{
			City:    city,
			State:   "Bahia",
			Country: "Brazil",
		},
		Current: models.CurrentConditions{
			Temperature:   temp,
			FeelsLike:     temp + 2,
			Humidity:      humidity,
			Pressure:      1013,
			WindSpeed:     10,
			WindDirection: 90,
			UVIndex:       uv,
			CloudCover:    40,
			Visibility:    10000,
			WeatherCode:   1,
			Condition:     "Mainly clear",
		},
		Daily: models.DailyRange{
			TempMin: temp - 3,
			TempMax: temp + 5,
		},
	}
}
