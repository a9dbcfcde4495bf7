package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FelipeAraujoBS/weather-monitoring-system/collector"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

// CollectorMessage is the envelope published to the ingestion queue by the
// upstream collectors. Only a reduced reading travels on the queue; the
// transformer fills the remaining model fields with derived values.
type CollectorMessage struct {
	Source      string            `json:"source"`
	CollectedAt string            `json:"collected_at"`
	Location    CollectorLocation `json:"location"`
	Data        CollectorReading  `json:"data"`
}

// CollectorLocation identifies where the reading was taken.
type CollectorLocation struct {
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CollectorReading is the reduced observation carried on the queue.
type CollectorReading struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
}

// Derived-field defaults applied when the queue payload does not carry the
// full observation.
const (
	defaultPressure   = 1013.0
	defaultUVIndex    = 5.0
	defaultCloudCover = 50.0
	defaultVisibility = 10000.0
)

var stateNames = map[string]string{
	"BA": "Bahia",
	"SP": "São Paulo",
	"RJ": "Rio de Janeiro",
	"MG": "Minas Gerais",
	"PE": "Pernambuco",
	"CE": "Ceará",
}

var countryNames = map[string]string{
	"BR": "Brazil",
	"US": "United States",
	"PT": "Portugal",
}

// Transform converts a raw queue payload into a persistable weather record.
// A payload that cannot be parsed or that names no city is rejected.
func Transform(body []byte) (*models.WeatherRecord, error) {
	var msg CollectorMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing collector message: %w", err)
	}
	if msg.Location.City == "" {
		return nil, fmt.Errorf("collector message has no city")
	}

	ts, err := time.Parse("2006-01-02T15:04", msg.Data.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	temp := msg.Data.Temperature

	record := &models.WeatherRecord{
		Timestamp: ts,
		Location: models.Location{
			City:      msg.Location.City,
			State:     expandState(msg.Location.State),
			Country:   expandCountry(msg.Location.Country),
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		},
		Current: models.CurrentConditions{
			Temperature: temp,
			FeelsLike:   temp + 2,
			Humidity:    msg.Data.Humidity,
			Pressure:    defaultPressure,
			WindSpeed:   msg.Data.WindSpeed,
			UVIndex:     defaultUVIndex,
			CloudCover:  defaultCloudCover,
			Visibility:  defaultVisibility,
			WeatherCode: msg.Data.WeatherCode,
			Condition:   collector.ConditionFromCode(msg.Data.WeatherCode),
		},
		Daily: models.DailyRange{
			TempMin: temp - 3,
			TempMax: temp + 5,
		},
		Source: msg.Source,
	}

	if record.Source == "" {
		record.Source = models.DefaultSource
	}

	return record, nil
}

func expandState(state string) string {
	if name, ok := stateNames[state]; ok {
		return name
	}
	return state
}

func expandCountry(country string) string {
	if country == "" {
		return "Brazil"
	}
	if name, ok := countryNames[country]; ok {
		return name
	}
	return country
}
