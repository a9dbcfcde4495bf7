package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FelipeAraujoBS/weather-monitoring-system/internal/error/code"
	"github.com/FelipeAraujoBS/weather-monitoring-system/internal/error/response"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services/container"
)

// WeatherController handles weather ingestion and query requests.
type WeatherController struct {
	BaseControllerImpl
}

// NewWeatherController creates a new weather controller.
func (f *ControllerFactory) NewWeatherController(ctx *gin.Context) *WeatherController {
	return &WeatherController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// LocationPayload is the location block of an ingestion request.
type LocationPayload struct {
	City      string   `json:"city" binding:"required"`
	State     string   `json:"state" binding:"required"`
	Country   string   `json:"country" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CurrentPayload is the current-conditions block of an ingestion request.
// Required numeric fields are pointers so a legitimate zero reading passes
// the required check.
type CurrentPayload struct {
	Temperature              *float64 `json:"temperature" binding:"required"`
	FeelsLike                *float64 `json:"feelsLike" binding:"required"`
	Humidity                 *float64 `json:"humidity" binding:"required,gte=0,lte=100"`
	Pressure                 *float64 `json:"pressure" binding:"required"`
	WindSpeed                *float64 `json:"windSpeed" binding:"required,gte=0"`
	WindDirection            *float64 `json:"windDirection" binding:"required,gte=0,lte=360"`
	UVIndex                  *float64 `json:"uvIndex" binding:"required,gte=0"`
	CloudCover               *float64 `json:"cloudCover" binding:"required,gte=0,lte=100"`
	Visibility               *float64 `json:"visibility" binding:"required,gte=0"`
	WeatherCode              *int     `json:"weatherCode" binding:"required"`
	Condition                string   `json:"condition" binding:"required"`
	Precipitation            *float64 `json:"precipitation" binding:"omitempty,gte=0"`
	PrecipitationProbability *float64 `json:"precipitationProbability" binding:"omitempty,gte=0,lte=100"`
}

// DailyPayload is the daily-extremes block of an ingestion request.
type DailyPayload struct {
	TempMin *float64 `json:"tempMin" binding:"required"`
	TempMax *float64 `json:"tempMax" binding:"required"`
}

// CreateWeatherRequest is one full observation from the collector.
type CreateWeatherRequest struct {
	Timestamp time.Time       `json:"timestamp" binding:"required"`
	Location  LocationPayload `json:"location" binding:"required"`
	Current   CurrentPayload  `json:"current" binding:"required"`
	Daily     DailyPayload    `json:"daily" binding:"required"`
	Source    string          `json:"source"`
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ToRecord maps the validated payload onto the persistence model.
func (r *CreateWeatherRequest) ToRecord() *models.WeatherRecord {
	return &models.WeatherRecord{
		Timestamp: r.Timestamp,
		Location: models.Location{
			City:      r.Location.City,
			State:     r.Location.State,
			Country:   r.Location.Country,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
		},
		Current: models.CurrentConditions{
			Temperature:              deref(r.Current.Temperature),
			FeelsLike:                deref(r.Current.FeelsLike),
			Humidity:                 deref(r.Current.Humidity),
			Pressure:                 deref(r.Current.Pressure),
			WindSpeed:                deref(r.Current.WindSpeed),
			WindDirection:            deref(r.Current.WindDirection),
			UVIndex:                  deref(r.Current.UVIndex),
			CloudCover:               deref(r.Current.CloudCover),
			Visibility:               deref(r.Current.Visibility),
			WeatherCode:              *r.Current.WeatherCode,
			Condition:                r.Current.Condition,
			Precipitation:            deref(r.Current.Precipitation),
			PrecipitationProbability: deref(r.Current.PrecipitationProbability),
		},
		Daily: models.DailyRange{
			TempMin: deref(r.Daily.TempMin),
			TempMax: deref(r.Daily.TempMax),
		},
		Source: r.Source,
	}
}

// HandleWeatherFunc returns a Gin handler dispatching to a weather
// controller method.
func HandleWeatherFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewWeatherController(ctx)

		switch method {
		case "create":
			controller.Create()
		case "getLatest":
			controller.GetLatest()
		case "getHistory":
			controller.GetHistory()
		case "getStats":
			controller.GetStats()
		case "generateInsight":
			controller.GenerateInsight()
		case "exportData":
			controller.ExportData()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}

// Create ingests one weather record
// @Summary      Ingest weather record
// @Description  Persists a fully-populated observation from the collector; no per-city-per-time deduplication is performed
// @Tags         Weather
// @Accept       json
// @Produce      json
// @Param        request body CreateWeatherRequest true "Weather observation"
// @Success      201  {object}  response.Response  "Stored record"
// @Failure      400  {object}  response.Response  "Validation error"
// @Security     BearerAuth
// @Router       /weather [post]
func (c *WeatherController) Create() {
	var req CreateWeatherRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error())
		return
	}

	record := req.ToRecord()
	if err := c.Container.GetWeatherService().Create(record); err != nil {
		response.Fail(c.Context, code.ErrDatabase)
		return
	}

	if redisService := c.Container.GetRedisService(); redisService != nil {
		redisService.InvalidateLatest(record.Location.City)
	}

	response.Created(c.Context, "Weather data processed and saved successfully.", record)
}

// GetLatest returns the most recent record
// @Summary      Latest weather record
// @Description  Returns the single most recent observation, optionally filtered to one city
// @Tags         Weather
// @Produce      json
// @Param        city query string false "Exact city filter"
// @Success      200  {object}  response.Response  "Latest record"
// @Failure      404  {object}  response.Response  "No data"
// @Security     BearerAuth
// @Router       /weather/latest [get]
func (c *WeatherController) GetLatest() {
	city := c.Context.Query("city")
	redisService := c.Container.GetRedisService()

	if redisService != nil {
		var cached models.WeatherRecord
		if err := redisService.GetLatest(city, &cached); err == nil {
			response.Success(c.Context, "Latest weather data retrieved successfully.", cached)
			return
		}
	}

	record, err := c.Container.GetWeatherService().GetLatest(city)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase)
		return
	}
	if record == nil {
		if city != "" {
			response.FailWithMessage(c.Context, code.ErrWeatherNotFound,
				fmt.Sprintf("No weather data found for city: %s", city))
		} else {
			response.Fail(c.Context, code.ErrNoWeatherData)
		}
		return
	}

	if redisService != nil {
		redisService.CacheLatest(city, record)
	}

	response.Success(c.Context, "Latest weather data retrieved successfully.", record)
}

// parseDateParam accepts RFC3339 or plain dates.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetHistory returns filtered history
// @Summary      Weather history
// @Description  Returns records matching the filter, newest first, with limit/skip pagination
// @Tags         Weather
// @Produce      json
// @Param        city       query string false "Exact city filter"
// @Param        startDate  query string false "Inclusive lower timestamp bound (RFC3339 or YYYY-MM-DD)"
// @Param        endDate    query string false "Inclusive upper timestamp bound (RFC3339 or YYYY-MM-DD)"
// @Param        limit      query int    false "Page size (default 10, capped)"
// @Param        skip       query int    false "Records to skip"
// @Success      200  {object}  response.Response  "Records plus count"
// @Failure      400  {object}  response.Response  "Validation error"
// @Security     BearerAuth
// @Router       /weather/history [get]
func (c *WeatherController) GetHistory() {
	filter, ok := c.bindHistoryFilter()
	if !ok {
		return
	}

	records, err := c.Container.GetWeatherService().GetHistory(filter)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase)
		return
	}

	response.Collection(c.Context, "Weather history retrieved successfully.", records, len(records))
}

func (c *WeatherController) bindHistoryFilter() (services.HistoryFilter, bool) {
	var filter services.HistoryFilter
	filter.City = c.Context.Query("city")

	startDate, err := parseDateParam(c.Context.Query("startDate"))
	if err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, "invalid startDate")
		return filter, false
	}
	filter.StartDate = startDate

	endDate, err := parseDateParam(c.Context.Query("endDate"))
	if err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, "invalid endDate")
		return filter, false
	}
	filter.EndDate = endDate

	if raw := c.Context.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.FailWithMessage(c.Context, code.ErrValidation, "invalid limit")
			return filter, false
		}
		filter.Limit = limit
	}

	if raw := c.Context.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			response.FailWithMessage(c.Context, code.ErrValidation, "invalid skip")
			return filter, false
		}
		filter.Skip = skip
	}

	return filter, true
}

// GetStats returns trailing-window statistics
// @Summary      Weather statistics
// @Description  Aggregates temperature, humidity and UV index over the trailing window; data is null when no record matches
// @Tags         Weather
// @Produce      json
// @Param        city query string false "Exact city filter"
// @Param        days query int    false "Trailing window in days (default 7)"
// @Success      200  {object}  response.Response  "Stats or null data"
// @Security     BearerAuth
// @Router       /weather/stats [get]
func (c *WeatherController) GetStats() {
	city := c.Context.Query("city")

	days := 7
	if raw := c.Context.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.FailWithMessage(c.Context, code.ErrValidation, "invalid days")
			return
		}
		days = parsed
	}

	redisService := c.Container.GetRedisService()
	if redisService != nil {
		var cached services.WeatherStats
		if err := redisService.GetStats(city, days, &cached); err == nil {
			response.Success(c.Context, "Weather statistics calculated successfully.", cached)
			return
		}
	}

	stats, err := c.Container.GetWeatherService().GetStats(city, days)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase)
		return
	}
	if stats == nil {
		// Absence is the normal "nothing yet" case, not a fault.
		response.Success(c.Context, "Weather statistics calculated successfully.", nil)
		return
	}

	if redisService != nil {
		redisService.CacheStats(city, days, stats)
	}

	response.Success(c.Context, "Weather statistics calculated successfully.", stats)
}

// GenerateInsight attaches an AI insight to a record
// @Summary      Generate AI insight
// @Description  Loads the record, prompts the generative model and attaches the parsed insight, overwriting any prior one
// @Tags         Weather
// @Produce      json
// @Param        id path int true "Weather record id"
// @Success      200  {object}  response.Response  "Updated record"
// @Failure      404  {object}  response.Response  "Unknown record id"
// @Failure      502  {object}  response.Response  "AI provider failure"
// @Security     BearerAuth
// @Router       /weather/{id}/insight [post]
func (c *WeatherController) GenerateInsight() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 64)
	if err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, "invalid record id")
		return
	}

	record, err := c.Container.GetWeatherService().GenerateInsight(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			response.FailWithMessage(c.Context, code.ErrWeatherNotFound,
				fmt.Sprintf("Weather data with ID %d not found.", id))
		case errors.Is(err, services.ErrAINotConfigured):
			response.Fail(c.Context, code.ErrAINotConfigured)
		case errors.Is(err, services.ErrAIProvider):
			response.Fail(c.Context, code.ErrAIProvider)
		default:
			response.Fail(c.Context, code.ErrDatabase)
		}
		return
	}

	response.Success(c.Context, "AI insight generated successfully.", record)
}

// ExportData returns the export stub descriptor
// @Summary      Export weather data
// @Description  Gathers matching records and returns a placeholder export descriptor; file serialization is not implemented yet
// @Tags         Weather
// @Produce      json
// @Param        city       query string false "Exact city filter"
// @Param        startDate  query string false "Inclusive lower timestamp bound"
// @Param        endDate    query string false "Inclusive upper timestamp bound"
// @Param        format     query string false "csv or xlsx (default csv)"
// @Success      200  {object}  response.Response  "Export descriptor"
// @Security     BearerAuth
// @Router       /weather/export [get]
func (c *WeatherController) ExportData() {
	filter, ok := c.bindHistoryFilter()
	if !ok {
		return
	}

	format := c.Context.DefaultQuery("format", "csv")
	descriptor, err := c.Container.GetWeatherService().Export(filter, format)
	if err != nil {
		response.Fail(c.Context, code.ErrDatabase)
		return
	}

	response.Success(c.Context, "Export prepared.", descriptor)
}
