package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

var (
	// ErrAINotConfigured is returned when no provider API key is set.
	ErrAINotConfigured = errors.New("AI provider credentials are not configured")
	// ErrAIProvider wraps transport-level failures of the provider call.
	ErrAIProvider = errors.New("AI provider request failed")
)

// InterfaceAIService generates a structured insight for one weather record.
type InterfaceAIService interface {
	GenerateWeatherInsight(record *models.WeatherRecord) (*models.AiInsight, error)
}

// AIService calls the Gemini generateContent REST API and parses the model
// output into an AiInsight. The model is not obligated to return valid
// JSON, so parsing is best-effort and never fails the operation.
type AIService struct {
	Config *config.Config
	client *http.Client
}

// NewAIService creates a new AI service.
func NewAIService(cfg *config.Config) *AIService {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIService{
		Config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// generateContent request/response shapes (Gemini REST API).
type generateContentRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateWeatherInsight prompts the model with the record's conditions and
// returns the parsed insight, stamped with the generation time.
func (s *AIService) GenerateWeatherInsight(record *models.WeatherRecord) (*models.AiInsight, error) {
	if s.Config.AIAPIKey == "" {
		return nil, ErrAINotConfigured
	}

	text, err := s.generateContent(buildInsightPrompt(record))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIProvider, err)
	}

	return parseInsightResponse(text, time.Now()), nil
}

// generateContent performs one generateContent call and returns the raw
// model text. Single attempt, no retry.
func (s *AIService) generateContent(prompt string) (string, error) {
	var reqBody generateContentRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.Config.AIBaseURL, "/"),
		s.Config.AIModel,
		s.Config.AIAPIKey)

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var apiResp generateContentResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("error decoding provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if apiResp.Error != nil {
			return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, apiResp.Error.Message)
		}
		return "", fmt.Errorf("provider returned status code %d", resp.StatusCode)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("provider returned no candidates")
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

// buildInsightPrompt renders the fixed prompt template for one record.
func buildInsightPrompt(record *models.WeatherRecord) string {
	return fmt.Sprintf(`Analyze the following weather data from %s, %s and generate useful insights:

Temperature: %.1f°C
Humidity: %.0f%%
Wind Speed: %.1f km/h
Condition: %s
Date/Time: %s

Respond with a JSON object in exactly this format:
{
  "summary": "brief summary of the situation",
  "alerts": ["alert1", "alert2"],
  "recommendations": ["recommendation1", "recommendation2"],
  "trends": "trend analysis"
}`,
		record.Location.City,
		record.Location.State,
		record.Current.Temperature,
		record.Current.Humidity,
		record.Current.WindSpeed,
		record.Current.Condition,
		record.Timestamp.Format(time.RFC3339),
	)
}

// parseInsightResponse extracts the first JSON-looking span (first '{' to
// last '}') from the model output and decodes it. Any parse failure
// degrades to an insight carrying the whole raw text as summary.
func parseInsightResponse(text string, generatedAt time.Time) *models.AiInsight {
	insight := &models.AiInsight{
		Summary:         text,
		Alerts:          []string{},
		Recommendations: []string{},
		Trends:          "",
		GeneratedAt:     generatedAt,
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return insight
	}

	var parsed struct {
		Summary         string   `json:"summary"`
		Alerts          []string `json:"alerts"`
		Recommendations []string `json:"recommendations"`
		Trends          string   `json:"trends"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return insight
	}

	insight.Summary = parsed.Summary
	insight.Trends = parsed.Trends
	if parsed.Alerts != nil {
		insight.Alerts = parsed.Alerts
	}
	if parsed.Recommendations != nil {
		insight.Recommendations = parsed.Recommendations
	}
	return insight
}
