package models

import "time"

// DefaultSource is the provenance tag applied when a record arrives
// without one.
const DefaultSource = "open-meteo"

// Location identifies where an observation was collected. City is part of
// the composite (city, timestamp) index that backs per-city recency queries.
type Location struct {
	City      string   `gorm:"type:varchar(100);not null;index:idx_city_timestamp,priority:1" json:"city"`
	State     string   `gorm:"type:varchar(100);not null" json:"state"`
	Country   string   `gorm:"type:varchar(100);not null" json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// CurrentConditions holds the instantaneous readings of one observation.
type CurrentConditions struct {
	Temperature              float64 `gorm:"not null" json:"temperature"`
	FeelsLike                float64 `gorm:"not null" json:"feelsLike"`
	Humidity                 float64 `gorm:"not null" json:"humidity"`
	Pressure                 float64 `gorm:"not null" json:"pressure"`
	WindSpeed                float64 `gorm:"not null" json:"windSpeed"`
	WindDirection            float64 `gorm:"not null" json:"windDirection"`
	UVIndex                  float64 `gorm:"not null" json:"uvIndex"`
	CloudCover               float64 `gorm:"not null" json:"cloudCover"`
	Visibility               float64 `gorm:"not null" json:"visibility"`
	WeatherCode              int     `gorm:"not null" json:"weatherCode"`
	Condition                string  `gorm:"type:varchar(100);not null" json:"condition"`
	Precipitation            float64 `gorm:"default:0" json:"precipitation"`
	PrecipitationProbability float64 `gorm:"default:0" json:"precipitationProbability"`
}

// DailyRange holds the day's temperature extremes.
type DailyRange struct {
	TempMin float64 `gorm:"not null" json:"tempMin"`
	TempMax float64 `gorm:"not null" json:"tempMax"`
}

// AiInsight is the structured commentary attached to a record by the AI
// generator. Stored as a JSON column; overwritten, never versioned.
type AiInsight struct {
	Summary         string    `json:"summary"`
	Alerts          []string  `json:"alerts"`
	Recommendations []string  `json:"recommendations"`
	Trends          string    `json:"trends"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// WeatherRecord is one stored weather observation. Timestamp is the primary
// ordering key (descending = newest first). After creation only AiInsight
// is ever updated in place.
type WeatherRecord struct {
	BaseModel
	Timestamp time.Time         `gorm:"not null;index:,sort:desc;index:idx_city_timestamp,priority:2,sort:desc" json:"timestamp"`
	Location  Location          `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Current   CurrentConditions `gorm:"embedded;embeddedPrefix:current_" json:"current"`
	Daily     DailyRange        `gorm:"embedded;embeddedPrefix:daily_" json:"daily"`
	Source    string            `gorm:"type:varchar(50);not null;default:open-meteo" json:"source"`
	AiInsight *AiInsight        `gorm:"serializer:json" json:"aiInsight,omitempty"`
}
