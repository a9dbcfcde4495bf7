package services

import (
	"errors"
	"testing"
	"time"

	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
)

type fakeAIService struct {
	insight *models.AiInsight
	err     error
	calls   int
}

func (f *fakeAIService) GenerateWeatherInsight(record *models.WeatherRecord) (*models.AiInsight, error) {
	f.calls++
	return f.insight, f.err
}

func newWeatherService(t *testing.T, ai InterfaceAIService) *WeatherService {
	t.Helper()
	return NewWeatherService(newTestDB(t), newTestConfig(), ai)
}

func TestWeatherServiceCreateDefaultsSource(t *testing.T) {
	svc := newWeatherService(t, nil)

	record := makeRecord("Salvador", time.Now(), 28, 70, 8)
	if err := svc.Create(record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if record.ID == 0 {
		t.Error("expected record to be assigned an id")
	}
	if record.Source != models.DefaultSource {
		t.Errorf("expected source %q, got %q", models.DefaultSource, record.Source)
	}
}

func TestWeatherServiceGetLatest(t *testing.T) {
	svc := newWeatherService(t, nil)

	now := time.Now()
	older := makeRecord("Salvador", now.Add(-2*time.Hour), 24, 60, 5)
	newest := makeRecord("Salvador", now, 29, 75, 9)
	other := makeRecord("Recife", now.Add(-time.Hour), 31, 80, 10)

	for _, r := range []*models.WeatherRecord{older, newest, other} {
		if err := svc.Create(r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := svc.GetLatest("Salvador")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record, got nil")
	}
	if got.ID != newest.ID {
		t.Errorf("expected newest record %d, got %d", newest.ID, got.ID)
	}

	// Unfiltered latest is the globally newest record.
	got, err = svc.GetLatest("")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got == nil || got.ID != newest.ID {
		t.Errorf("expected global latest %d, got %+v", newest.ID, got)
	}
}

func TestWeatherServiceGetLatestAbsence(t *testing.T) {
	svc := newWeatherService(t, nil)

	got, err := svc.GetLatest("Nowhere")
	if err != nil {
		t.Fatalf("expected no error for empty store, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record for empty store, got %+v", got)
	}
}

func TestWeatherServiceGetHistory(t *testing.T) {
	svc := newWeatherService(t, nil)

	now := time.Now()
	for i := 0; i < 5; i++ {
		r := makeRecord("Salvador", now.Add(-time.Duration(i)*time.Hour), 20+float64(i), 60, 5)
		if err := svc.Create(r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := svc.Create(makeRecord("Recife", now, 31, 80, 10)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := svc.GetHistory(HistoryFilter{City: "Salvador"})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for _, r := range records {
		if r.Location.City != "Salvador" {
			t.Errorf("city filter leaked record for %q", r.Location.City)
		}
	}
	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.After(records[i-1].Timestamp) {
			t.Error("expected records in descending timestamp order")
		}
	}
}

func TestWeatherServiceGetHistoryPagination(t *testing.T) {
	svc := newWeatherService(t, nil)

	now := time.Now()
	for i := 0; i < 5; i++ {
		r := makeRecord("Salvador", now.Add(-time.Duration(i)*time.Hour), 20+float64(i), 60, 5)
		if err := svc.Create(r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	page, err := svc.GetHistory(HistoryFilter{City: "Salvador", Limit: 2, Skip: 1})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}

	all, err := svc.GetHistory(HistoryFilter{City: "Salvador", Limit: 5})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if page[0].ID != all[1].ID || page[1].ID != all[2].ID {
		t.Errorf("expected records 2-3 of the ordered set, got ids %d,%d", page[0].ID, page[1].ID)
	}
}

func TestWeatherServiceGetHistoryLimitCap(t *testing.T) {
	svc := newWeatherService(t, nil)
	svc.Config.HistoryMaxLimit = 3

	now := time.Now()
	for i := 0; i < 5; i++ {
		if err := svc.Create(makeRecord("Salvador", now.Add(-time.Duration(i)*time.Minute), 25, 60, 5)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	records, err := svc.GetHistory(HistoryFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected limit capped at 3, got %d records", len(records))
	}
}

func TestWeatherServiceGetHistoryDateBounds(t *testing.T) {
	svc := newWeatherService(t, nil)

	base := time.Now().Add(-48 * time.Hour)
	inside := makeRecord("Salvador", base.Add(2*time.Hour), 25, 60, 5)
	outside := makeRecord("Salvador", base.Add(30*time.Hour), 27, 65, 6)
	for _, r := range []*models.WeatherRecord{inside, outside} {
		if err := svc.Create(r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	start := base
	end := base.Add(10 * time.Hour)
	records, err := svc.GetHistory(HistoryFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != inside.ID {
		t.Errorf("expected only the in-window record, got %d records", len(records))
	}
}

func TestWeatherServiceGetStats(t *testing.T) {
	svc := newWeatherService(t, nil)

	now := time.Now()
	temps := []float64{20, 25, 30}
	hums := []float64{50, 60, 70}
	uvs := []float64{2, 5, 8}
	for i := range temps {
		r := makeRecord("Salvador", now.Add(-time.Duration(i)*time.Hour), temps[i], hums[i], uvs[i])
		if err := svc.Create(r); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	stats, err := svc.GetStats("Salvador", 7)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}

	if stats.TotalRecords != 3 {
		t.Errorf("expected 3 records, got %d", stats.TotalRecords)
	}
	if stats.Period.Days != 7 {
		t.Errorf("expected 7-day period, got %d", stats.Period.Days)
	}
	if stats.Temperature.Avg != 25 || stats.Temperature.Min != 20 || stats.Temperature.Max != 30 {
		t.Errorf("unexpected temperature stats: %+v", stats.Temperature)
	}
	if stats.Humidity.Avg != 60 || stats.Humidity.Min != 50 || stats.Humidity.Max != 70 {
		t.Errorf("unexpected humidity stats: %+v", stats.Humidity)
	}
	if stats.UVIndex.Avg != 5 || stats.UVIndex.Max != 8 {
		t.Errorf("unexpected uv stats: %+v", stats.UVIndex)
	}
}

func TestWeatherServiceGetStatsAbsence(t *testing.T) {
	svc := newWeatherService(t, nil)

	// Only a record outside the window.
	old := makeRecord("Salvador", time.Now().Add(-10*24*time.Hour), 25, 60, 5)
	if err := svc.Create(old); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stats, err := svc.GetStats("Salvador", 7)
	if err != nil {
		t.Fatalf("expected no error for empty window, got %v", err)
	}
	if stats != nil {
		t.Errorf("expected nil stats for empty window, got %+v", stats)
	}
}

func TestWeatherServiceGenerateInsightUnknownID(t *testing.T) {
	ai := &fakeAIService{}
	svc := newWeatherService(t, ai)

	_, err := svc.GenerateInsight(999)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if ai.calls != 0 {
		t.Error("AI provider must not be called for an unknown record")
	}
}

func TestWeatherServiceGenerateInsight(t *testing.T) {
	insight := &models.AiInsight{
		Summary:         "warm and humid",
		Alerts:          []string{"high UV"},
		Recommendations: []string{"stay hydrated"},
		Trends:          "stable",
		GeneratedAt:     time.Now(),
	}
	ai := &fakeAIService{insight: insight}
	svc := newWeatherService(t, ai)

	record := makeRecord("Salvador", time.Now(), 28, 70, 8)
	if err := svc.Create(record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.GenerateInsight(record.ID)
	if err != nil {
		t.Fatalf("GenerateInsight failed: %v", err)
	}
	if updated.AiInsight == nil || updated.AiInsight.Summary != "warm and humid" {
		t.Fatalf("expected insight on returned record, got %+v", updated.AiInsight)
	}

	var reloaded models.WeatherRecord
	if err := svc.DB.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.AiInsight == nil || reloaded.AiInsight.Summary != "warm and humid" {
		t.Errorf("expected insight persisted, got %+v", reloaded.AiInsight)
	}
	if reloaded.Current.Temperature != 28 {
		t.Errorf("observation fields must survive insight write, got temp %v", reloaded.Current.Temperature)
	}
}

func TestWeatherServiceGenerateInsightProviderFailure(t *testing.T) {
	ai := &fakeAIService{err: ErrAIProvider}
	svc := newWeatherService(t, ai)

	record := makeRecord("Salvador", time.Now(), 28, 70, 8)
	if err := svc.Create(record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.GenerateInsight(record.ID)
	if !errors.Is(err, ErrAIProvider) {
		t.Fatalf("expected ErrAIProvider, got %v", err)
	}

	var reloaded models.WeatherRecord
	if err := svc.DB.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.AiInsight != nil {
		t.Error("failed generation must not write an insight")
	}
}

func TestWeatherServiceExport(t *testing.T) {
	svc := newWeatherService(t, nil)

	now := time.Now()
	for i := 0; i < 3; i++ {
		if err := svc.Create(makeRecord("Salvador", now.Add(-time.Duration(i)*time.Hour), 25, 60, 5)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	descriptor, err := svc.Export(HistoryFilter{City: "Salvador"}, "pdf")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if descriptor.Format != "csv" {
		t.Errorf("unknown format must default to csv, got %q", descriptor.Format)
	}
	if descriptor.Records != 3 {
		t.Errorf("expected 3 records counted, got %d", descriptor.Records)
	}
	if descriptor.ID == "" || descriptor.Filename == "" {
		t.Errorf("expected populated descriptor, got %+v", descriptor)
	}
	if descriptor.Message != "Export functionality to be implemented" {
		t.Errorf("unexpected descriptor message %q", descriptor.Message)
	}
}
