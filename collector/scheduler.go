package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services"
)

// Scheduler periodically fetches observations for a fixed set of locations
// and stores them through the weather service.
type Scheduler struct {
	client    *OpenMeteoClient
	weather   services.InterfaceWeatherService
	locations []Location
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewScheduler builds a collector from configuration. Locations come from
// COLLECTOR_LOCATIONS ("City,State,Country,lat,lon" entries separated by
// ';'); the fetch interval from COLLECTOR_INTERVAL_MINUTES.
func NewScheduler(cfg *config.Config, weather services.InterfaceWeatherService) (*Scheduler, error) {
	locations, err := ParseLocations(cfg.CollectorLocations)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("no collector locations configured")
	}

	interval := cfg.CollectorInterval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	return &Scheduler{
		client:    NewOpenMeteoClient(),
		weather:   weather,
		locations: locations,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.UTC),
	}, nil
}

// Start registers the collection job and runs it asynchronously. The first
// run fires immediately so the dashboard has data right after boot.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.collectAll)
	if err != nil {
		return fmt.Errorf("error scheduling collector job: %w", err)
	}

	s.scheduler.StartAsync()
	config.Info("Collector started: %d location(s), every %s", len(s.locations), s.interval)
	return nil
}

// Stop halts the scheduler. Running jobs finish their current iteration.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) collectAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, loc := range s.locations {
		record, err := s.client.Fetch(ctx, loc)
		if err != nil {
			config.Error("Collector: fetch failed for %s: %v", loc.City, err)
			continue
		}

		if err := s.weather.Create(record); err != nil {
			config.Error("Collector: store failed for %s: %v", loc.City, err)
			continue
		}
		config.Info("Collector: stored observation for %s (%.1f°C)", loc.City, record.Current.Temperature)
	}
}

// ParseLocations parses the COLLECTOR_LOCATIONS setting. Each entry is
// "City,State,Country,lat,lon"; entries are separated by ';'. Blank entries
// are skipped, malformed ones are an error.
func ParseLocations(raw string) ([]Location, error) {
	var locations []Location

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ",")
		if len(parts) != 5 {
			return nil, fmt.Errorf("invalid location entry %q: want City,State,Country,lat,lon", entry)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", entry, err)
		}

		locations = append(locations, Location{
			City:      strings.TrimSpace(parts[0]),
			State:     strings.TrimSpace(parts[1]),
			Country:   strings.TrimSpace(parts[2]),
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return locations, nil
}
