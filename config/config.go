package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application, loaded once from the
// environment at process start and passed explicitly to the services that
// need it.
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Server
	ServerPort string

	// Redis
	RedisHost string
	RedisPort string
	RedisDB   int

	// JWT authentication
	JWTSecretKey   string
	JWTExpireHours int

	// Generative AI provider (Gemini REST API)
	AIAPIKey  string
	AIModel   string
	AIBaseURL string
	AITimeout time.Duration

	// History query paging
	HistoryDefaultLimit int
	HistoryMaxLimit     int

	// RabbitMQ ingestion worker; disabled when the URL is empty
	RabbitMQURL string
	QueueName   string

	// Built-in collector; disabled when no locations are configured.
	// Locations are "City,State,Country,lat,lon" entries separated by ";".
	CollectorLocations string
	CollectorInterval  time.Duration
}

// LoadConfig loads config from environment variables.
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")

	return &Config{
		EnvType: envType,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "weather_db"),
		DBPort:     getEnv("DB_PORT", "3306"),

		ServerPort: getEnv("SERVER_PORT", "3001"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		JWTSecretKey:   getEnv("JWT_SECRET_KEY", "weather-secret-key-change-in-production"),
		JWTExpireHours: getEnvAsInt("JWT_EXPIRE_HOURS", 24),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "gemini-2.5-flash"),
		AIBaseURL: getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AITimeout: time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		HistoryDefaultLimit: getEnvAsInt("WEATHER_HISTORY_DEFAULT_LIMIT", 10),
		HistoryMaxLimit:     getEnvAsInt("WEATHER_HISTORY_MAX_LIMIT", 100),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		QueueName:   getEnv("QUEUE_NAME", "data_queue"),

		CollectorLocations: getEnv("COLLECTOR_LOCATIONS", ""),
		CollectorInterval:  time.Duration(getEnvAsInt("COLLECTOR_INTERVAL_MINUTES", 60)) * time.Minute,
	}
}

// GetConfig returns the application configuration as a singleton.
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string.
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

// GetRedisAddr returns the Redis address.
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// MaskedRabbitMQURL hides credentials when the AMQP URL is logged.
func (c *Config) MaskedRabbitMQURL() string {
	url := c.RabbitMQURL
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 {
		return url
	}
	userinfo := url[scheme+3 : at]
	if colon := strings.Index(userinfo, ":"); colon >= 0 {
		return fmt.Sprintf("%s%s:****%s", url[:scheme+3], userinfo[:colon], url[at:])
	}
	return url
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
