package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

// ErrRecordNotFound signals that the requested weather record id does not
// exist. It wraps the GORM sentinel so callers can use errors.Is on either.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// HistoryFilter narrows a history query. Date bounds are inclusive.
type HistoryFilter struct {
	City      string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Skip      int
}

// MetricStats is the avg/min/max triple for one environmental metric.
type MetricStats struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UVStats omits the minimum; the frontend only charts average and peak UV.
type UVStats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// StatsPeriod is the resolved trailing window of a stats query.
type StatsPeriod struct {
	Days      int       `json:"days"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// WeatherStats aggregates all records inside a trailing window.
type WeatherStats struct {
	Period       StatsPeriod `json:"period"`
	TotalRecords int         `json:"totalRecords"`
	Temperature  MetricStats `json:"temperature"`
	Humidity     MetricStats `json:"humidity"`
	UVIndex      UVStats     `json:"uvIndex"`
}

// ExportDescriptor is the placeholder returned by the export stub.
type ExportDescriptor struct {
	ID       string `json:"id"`
	Format   string `json:"format"`
	Records  int    `json:"records"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// InterfaceWeatherService is the ingestion and query surface over the
// weather record store.
type InterfaceWeatherService interface {
	Create(record *models.WeatherRecord) error
	GetLatest(city string) (*models.WeatherRecord, error)
	GetHistory(filter HistoryFilter) ([]models.WeatherRecord, error)
	GetStats(city string, days int) (*WeatherStats, error)
	GenerateInsight(id uint) (*models.WeatherRecord, error)
	Export(filter HistoryFilter, format string) (*ExportDescriptor, error)
}

// WeatherService persists and queries weather records and orchestrates
// AI insight generation.
type WeatherService struct {
	DB     *gorm.DB
	Config *config.Config
	AI     InterfaceAIService
}

// NewWeatherService creates a new weather service.
func NewWeatherService(db *gorm.DB, cfg *config.Config, aiService InterfaceAIService) *WeatherService {
	return &WeatherService{
		DB:     db,
		Config: cfg,
		AI:     aiService,
	}
}

// Create persists a new record, defaulting the source tag when absent.
// No per-city-per-time deduplication is performed.
func (s *WeatherService) Create(record *models.WeatherRecord) error {
	if record.Source == "" {
		record.Source = models.DefaultSource
	}
	return s.DB.Create(record).Error
}

// GetLatest returns the most recent record, optionally filtered to one
// city. Absence is reported as (nil, nil), not as an error.
func (s *WeatherService) GetLatest(city string) (*models.WeatherRecord, error) {
	query := s.DB.Order("timestamp DESC")
	if city != "" {
		query = query.Where("location_city = ?", city)
	}

	var record models.WeatherRecord
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetHistory returns records matching the filter, newest first. The limit
// defaults to 10 and is capped; skip below zero is treated as zero.
func (s *WeatherService) GetHistory(filter HistoryFilter) ([]models.WeatherRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = s.Config.HistoryDefaultLimit
	}
	if max := s.Config.HistoryMaxLimit; max > 0 && limit > max {
		limit = max
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	query := s.DB.Order("timestamp DESC").Limit(limit).Offset(skip)
	if filter.City != "" {
		query = query.Where("location_city = ?", filter.City)
	}
	if filter.StartDate != nil {
		query = query.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("timestamp <= ?", *filter.EndDate)
	}

	records := make([]models.WeatherRecord, 0, limit)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetStats aggregates temperature, humidity and UV index over the trailing
// window. Returns (nil, nil) when no record falls inside the window.
func (s *WeatherService) GetStats(city string, days int) (*WeatherStats, error) {
	if days <= 0 {
		days = 7
	}

	endDate := time.Now()
	startDate := endDate.Add(-time.Duration(days) * 24 * time.Hour)

	query := s.DB.Where("timestamp >= ?", startDate)
	if city != "" {
		query = query.Where("location_city = ?", city)
	}

	var records []models.WeatherRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	stats := &WeatherStats{
		Period: StatsPeriod{
			Days:      days,
			StartDate: startDate,
			EndDate:   endDate,
		},
		TotalRecords: len(records),
		Temperature:  MetricStats{Min: records[0].Current.Temperature, Max: records[0].Current.Temperature},
		Humidity:     MetricStats{Min: records[0].Current.Humidity, Max: records[0].Current.Humidity},
	}

	var tempSum, humSum, uvSum float64
	for _, r := range records {
		t := r.Current.Temperature
		tempSum += t
		if t < stats.Temperature.Min {
			stats.Temperature.Min = t
		}
		if t > stats.Temperature.Max {
			stats.Temperature.Max = t
		}

		h := r.Current.Humidity
		humSum += h
		if h < stats.Humidity.Min {
			stats.Humidity.Min = h
		}
		if h > stats.Humidity.Max {
			stats.Humidity.Max = h
		}

		uv := r.Current.UVIndex
		uvSum += uv
		if uv > stats.UVIndex.Max {
			stats.UVIndex.Max = uv
		}
	}

	n := float64(len(records))
	stats.Temperature.Avg = tempSum / n
	stats.Humidity.Avg = humSum / n
	stats.UVIndex.Avg = uvSum / n

	return stats, nil
}

// GenerateInsight loads the record, asks the AI service for an insight and
// attaches it, overwriting any prior insight. Only the insight column is
// written, so a concurrent regeneration can never clobber observation
// fields (last writer wins on the insight itself).
func (s *WeatherService) GenerateInsight(id uint) (*models.WeatherRecord, error) {
	var record models.WeatherRecord
	if err := s.DB.First(&record, id).Error; err != nil {
		return nil, err
	}

	insight, err := s.AI.GenerateWeatherInsight(&record)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&record).Update("ai_insight", insight).Error; err != nil {
		return nil, err
	}

	record.AiInsight = insight
	return &record, nil
}

// Export gathers the matching records and returns a placeholder
// descriptor; actual file serialization is not implemented yet.
// TODO: stream real CSV/XLSX output instead of the descriptor.
func (s *WeatherService) Export(filter HistoryFilter, format string) (*ExportDescriptor, error) {
	records, err := s.GetHistory(filter)
	if err != nil {
		return nil, err
	}

	if format != "csv" && format != "xlsx" {
		format = "csv"
	}

	return &ExportDescriptor{
		ID:       uuid.NewString(),
		Format:   format,
		Records:  len(records),
		Filename: fmt.Sprintf("weather-export-%s.%s", time.Now().Format("2006-01-02"), format),
		Message:  "Export functionality to be implemented",
	}, nil
}
