package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

// Location is one place the collector observes.
type Location struct {
	City      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
}

// OpenMeteoClient fetches current conditions from the Open-Meteo forecast
// API. Calls go through a circuit breaker with a short retry/backoff loop;
// this is the only path in the system that retries at all.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker

	maxRetries      int
	initialInterval time.Duration
}

// NewOpenMeteoClient creates a client against the public Open-Meteo API.
func NewOpenMeteoClient() *OpenMeteoClient {
	return NewOpenMeteoClientWithBaseURL("https://api.open-meteo.com/v1/forecast")
}

// NewOpenMeteoClientWithBaseURL allows pointing the client at a test server.
func NewOpenMeteoClientWithBaseURL(baseURL string) *OpenMeteoClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoClient{
		baseURL:         baseURL,
		client:          &http.Client{Timeout: 30 * time.Second},
		circuit:         cb,
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
	}
}

type openMeteoResponse struct {
	Current struct {
		Time                     string  `json:"time"`
		Temperature2m            float64 `json:"temperature_2m"`
		RelativeHumidity2m       float64 `json:"relative_humidity_2m"`
		ApparentTemperature      float64 `json:"apparent_temperature"`
		SurfacePressure          float64 `json:"surface_pressure"`
		WindSpeed10m             float64 `json:"wind_speed_10m"`
		WindDirection10m         float64 `json:"wind_direction_10m"`
		UVIndex                  float64 `json:"uv_index"`
		CloudCover               float64 `json:"cloud_cover"`
		Visibility               float64 `json:"visibility"`
		WeatherCode              int     `json:"weather_code"`
		Precipitation            float64 `json:"precipitation"`
		PrecipitationProbability float64 `json:"precipitation_probability"`
	} `json:"current"`
	Daily struct {
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Fetch retrieves the current observation for a location and maps it onto
// the persistence model.
func (c *OpenMeteoClient) Fetch(ctx context.Context, loc Location) (*models.WeatherRecord, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,surface_pressure,wind_speed_10m,wind_direction_10m,uv_index,cloud_cover,visibility,weather_code,precipitation,precipitation_probability")
	values.Set("daily", "temperature_2m_max,temperature_2m_min")
	values.Set("forecast_days", "1")
	values.Set("timezone", "UTC")

	resp, err := c.doWithResilience(ctx, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding open-meteo response: %w", err)
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}

	lat := loc.Latitude
	lon := loc.Longitude

	record := &models.WeatherRecord{
		Timestamp: ts,
		Location: models.Location{
			City:      loc.City,
			State:     loc.State,
			Country:   loc.Country,
			Latitude:  &lat,
			Longitude: &lon,
		},
		Current: models.CurrentConditions{
			Temperature:              payload.Current.Temperature2m,
			FeelsLike:                payload.Current.ApparentTemperature,
			Humidity:                 payload.Current.RelativeHumidity2m,
			Pressure:                 payload.Current.SurfacePressure,
			WindSpeed:                payload.Current.WindSpeed10m,
			WindDirection:            payload.Current.WindDirection10m,
			UVIndex:                  payload.Current.UVIndex,
			CloudCover:               payload.Current.CloudCover,
			Visibility:               payload.Current.Visibility,
			WeatherCode:              payload.Current.WeatherCode,
			Condition:                ConditionFromCode(payload.Current.WeatherCode),
			Precipitation:            payload.Current.Precipitation,
			PrecipitationProbability: payload.Current.PrecipitationProbability,
		},
		Source: models.DefaultSource,
	}

	if len(payload.Daily.Temperature2mMin) > 0 {
		record.Daily.TempMin = payload.Daily.Temperature2mMin[0]
	}
	if len(payload.Daily.Temperature2mMax) > 0 {
		record.Daily.TempMax = payload.Daily.Temperature2mMax[0]
	}

	return record, nil
}

// doWithResilience runs the GET through the circuit breaker, retrying
// transient failures with exponential backoff.
func (c *OpenMeteoClient) doWithResilience(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error

	delay := c.initialInterval
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if reqErr != nil {
				return nil, reqErr
			}

			resp, doErr := c.client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("open-meteo returned status code %d", resp.StatusCode)
			}
			return resp, nil
		})
		if err == nil {
			return result.(*http.Response), nil
		}

		// An open breaker means the provider is down; do not keep hammering.
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, err
		}

		lastErr = err
		if attempt >= c.maxRetries {
			return nil, lastErr
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// ConditionFromCode converts a WMO weather code into a textual label.
func ConditionFromCode(code int) string {
	conditions := map[int]string{
		0:  "Clear sky",
		1:  "Mainly clear",
		2:  "Partly cloudy",
		3:  "Overcast",
		45: "Fog",
		48: "Depositing rime fog",
		51: "Light drizzle",
		53: "Moderate drizzle",
		55: "Dense drizzle",
		61: "Light rain",
		63: "Moderate rain",
		65: "Heavy rain",
		71: "Light snow",
		73: "Moderate snow",
		75: "Heavy snow",
		77: "Snow grains",
		80: "Light rain showers",
		81: "Moderate rain showers",
		82: "Violent rain showers",
		85: "Light snow showers",
		86: "Heavy snow showers",
		95: "Thunderstorm",
		96: "Thunderstorm with light hail",
		99: "Thunderstorm with heavy hail",
	}

	if condition, exists := conditions[code]; exists {
		return condition
	}
	return "Unknown"
}
