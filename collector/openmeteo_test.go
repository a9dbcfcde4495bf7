package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const forecastBody = `{
	"current": {
		"time": "2025-03-01T12:00",
		"temperature_2m": 28.4,
		"relative_humidity_2m": 70,
		"apparent_temperature": 31.2,
		"surface_pressure": 1012,
		"wind_speed_10m": 14.3,
		"wind_direction_10m": 120,
		"uv_index": 8.5,
		"cloud_cover": 40,
		"visibility": 24140,
		"weather_code": 2,
		"precipitation": 0,
		"precipitation_probability": 10
	},
	"daily": {
		"temperature_2m_max": [31.0],
		"temperature_2m_min": [24.5]
	}
}`

func TestOpenMeteoFetch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":  r.URL.Query().Get("latitude"),
			"longitude": r.URL.Query().Get("longitude"),
			"current":   r.URL.Query().Get("current"),
		}
		w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	client := NewOpenMeteoClientWithBaseURL(server.URL)
	loc := Location{City: "Salvador", State: "Bahia", Country: "Brazil", Latitude: -12.97, Longitude: -38.5}

	record, err := client.Fetch(context.Background(), loc)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotQuery["latitude"] == "" || gotQuery["longitude"] == "" {
		t.Error("coordinates not sent to the provider")
	}
	if gotQuery["current"] == "" {
		t.Error("current-variable selection not sent to the provider")
	}

	if record.Location.City != "Salvador" || record.Location.State != "Bahia" {
		t.Errorf("unexpected location %+v", record.Location)
	}
	if record.Current.Temperature != 28.4 {
		t.Errorf("unexpected temperature %v", record.Current.Temperature)
	}
	if record.Current.FeelsLike != 31.2 {
		t.Errorf("unexpected feels-like %v", record.Current.FeelsLike)
	}
	if record.Current.Condition != "Partly cloudy" {
		t.Errorf("unexpected condition %q", record.Current.Condition)
	}
	if record.Daily.TempMin != 24.5 || record.Daily.TempMax != 31.0 {
		t.Errorf("unexpected daily range %v..%v", record.Daily.TempMin, record.Daily.TempMax)
	}

	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !record.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, record.Timestamp)
	}
}

func TestOpenMeteoFetchRetriesTransientFailures(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	client := NewOpenMeteoClientWithBaseURL(server.URL)
	client.initialInterval = time.Millisecond

	_, err := client.Fetch(context.Background(), Location{City: "Salvador"})
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestOpenMeteoFetchGivesUpAfterMaxRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOpenMeteoClientWithBaseURL(server.URL)
	client.initialInterval = time.Millisecond
	client.maxRetries = 1

	if _, err := client.Fetch(context.Background(), Location{City: "Salvador"}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestConditionFromCode(t *testing.T) {
	cases := map[int]string{
		0:   "Clear sky",
		2:   "Partly cloudy",
		61:  "Light rain",
		95:  "Thunderstorm",
		123: "Unknown",
	}
	for code, want := range cases {
		if got := ConditionFromCode(code); got != want {
			t.Errorf("code %d: expected %q, got %q", code, want, got)
		}
	}
}

func TestParseLocations(t *testing.T) {
	locations, err := ParseLocations("Salvador,Bahia,Brazil,-12.97,-38.5; Recife,Pernambuco,Brazil,-8.05,-34.9;")
	if err != nil {
		t.Fatalf("ParseLocations failed: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations[0].City != "Salvador" || locations[0].Latitude != -12.97 {
		t.Errorf("unexpected first location %+v", locations[0])
	}
	if locations[1].City != "Recife" || locations[1].Longitude != -34.9 {
		t.Errorf("unexpected second location %+v", locations[1])
	}
}

func TestParseLocationsMalformed(t *testing.T) {
	if _, err := ParseLocations("Salvador,Bahia,Brazil"); err == nil {
		t.Error("expected error for entry with missing fields")
	}
	if _, err := ParseLocations("Salvador,Bahia,Brazil,abc,-38.5"); err == nil {
		t.Error("expected error for non-numeric latitude")
	}
}

func TestParseLocationsEmpty(t *testing.T) {
	locations, err := ParseLocations("")
	if err != nil {
		t.Fatalf("ParseLocations failed: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("expected no locations, got %d", len(locations))
	}
}
