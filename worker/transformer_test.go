package worker

import (
	"testing"
	"time"

	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

func TestTransform(t *testing.T) {
	body := []byte(`{
		"source": "open_meteo_api",
		"collected_at": "2025-03-01T12:05:00Z",
		"location": {"city": "Salvador", "state": "BA", "country": "", "latitude": -12.97, "longitude": -38.5},
		"data": {"time": "2025-03-01T12:00", "temperature": 28, "humidity": 70, "wind_speed": 12.5, "weather_code": 2}
	}`)

	record, err := Transform(body)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if record.Location.City != "Salvador" {
		t.Errorf("unexpected city %q", record.Location.City)
	}
	if record.Location.State != "Bahia" {
		t.Errorf("expected state abbreviation expanded, got %q", record.Location.State)
	}
	if record.Location.Country != "Brazil" {
		t.Errorf("expected default country, got %q", record.Location.Country)
	}
	if record.Location.Latitude == nil || *record.Location.Latitude != -12.97 {
		t.Errorf("latitude lost: %v", record.Location.Latitude)
	}

	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !record.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, record.Timestamp)
	}

	if record.Current.Temperature != 28 {
		t.Errorf("unexpected temperature %v", record.Current.Temperature)
	}
	if record.Current.FeelsLike != 30 {
		t.Errorf("expected feels-like temperature+2, got %v", record.Current.FeelsLike)
	}
	if record.Current.Pressure != defaultPressure {
		t.Errorf("expected default pressure, got %v", record.Current.Pressure)
	}
	if record.Current.Condition != "Partly cloudy" {
		t.Errorf("unexpected condition %q", record.Current.Condition)
	}
	if record.Daily.TempMin != 25 || record.Daily.TempMax != 33 {
		t.Errorf("unexpected daily range %v..%v", record.Daily.TempMin, record.Daily.TempMax)
	}
	if record.Source != "open_meteo_api" {
		t.Errorf("source lost: %q", record.Source)
	}
}

func TestTransformMalformedPayload(t *testing.T) {
	if _, err := Transform([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestTransformMissingCity(t *testing.T) {
	body := []byte(`{"location": {"state": "BA"}, "data": {"temperature": 28}}`)
	if _, err := Transform(body); err == nil {
		t.Fatal("expected error for payload without city")
	}
}

func TestTransformBadTimestampFallsBackToNow(t *testing.T) {
	body := []byte(`{
		"location": {"city": "Salvador", "state": "BA"},
		"data": {"time": "yesterday-ish", "temperature": 28}
	}`)

	record, err := Transform(body)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if time.Since(record.Timestamp) > time.Minute {
		t.Errorf("expected near-now fallback timestamp, got %v", record.Timestamp)
	}
	if record.Source != models.DefaultSource {
		t.Errorf("expected default source, got %q", record.Source)
	}
}
