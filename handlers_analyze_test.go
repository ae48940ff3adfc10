package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrokg/ndvi"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	series *ndvi.Series
	err    error
}

func (p *stubProvider) FetchSeries(_ context.Context, _ ndvi.BoundingBox, _ int) (*ndvi.Series, error) {
	return p.series, p.err
}

func newTestApp(provider ndvi.SeriesProvider) *App {
	return &App{
		cfg:     Config{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newMetricsForTesting(),
		clock:   clockwork.NewRealClock(),
		power:   provider,
	}
}

type analyzeResp struct {
	HealthGrid  []json.RawMessage `json:"health_grid"`
	StressZones []json.RawMessage `json:"stress_zones"`
	TimeSeries  struct {
		Dates  []string  `json:"dates"`
		Values []float64 `json:"values"`
	} `json:"time_series"`
	Forecast struct {
		Dates  []string  `json:"dates"`
		Values []float64 `json:"values"`
	} `json:"forecast"`
	Recommendation string `json:"recommendation"`
	DataSource     string `json:"data_source"`
	Summary        struct {
		Health        string  `json:"health"`
		StressPercent float64 `json:"stress_percent"`
		AvgNDVI       float64 `json:"avg_ndvi"`
	} `json:"summary"`
}

func postAnalyze(t *testing.T, app *App, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	app.routes().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpointSourceUnavailable(t *testing.T) {
	// Provider down: the pipeline silently falls back to synthetic data.
	app := newTestApp(&stubProvider{err: errors.New("timeout")})

	rec := postAnalyze(t, app, `{"polygon":[[10,20],[10.01,20],[10.01,20.01],[10,20.01]],"period":30,"crop":"wheat"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.HealthGrid, 100)
	assert.Len(t, resp.TimeSeries.Values, 30)
	assert.Len(t, resp.TimeSeries.Dates, 30)
	assert.Equal(t, "mock", resp.DataSource)
	assert.Len(t, resp.Forecast.Values, 7)
	assert.NotEmpty(t, resp.Recommendation)
	assert.NotEmpty(t, resp.Summary.Health)
}

func TestAnalyzeEndpointDefaults(t *testing.T) {
	app := newTestApp(nil)

	rec := postAnalyze(t, app, `{"polygon":[[10,20],[10.01,20],[10.01,20.01]]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.TimeSeries.Values, defaultPeriod)
	assert.Contains(t, resp.Recommendation, defaultCrop)
}

func TestAnalyzeEndpointUsesRealSeries(t *testing.T) {
	series := &ndvi.Series{Source: "NASA POWER"}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		series.Dates = append(series.Dates, start.AddDate(0, 0, i).Format("2006-01-02"))
		series.Values = append(series.Values, 0.6)
	}
	app := newTestApp(&stubProvider{series: series})

	rec := postAnalyze(t, app, `{"polygon":[[10,20],[10.01,20],[10.01,20.01],[10,20.01]],"period":10}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NASA POWER", resp.DataSource)
	assert.Len(t, resp.TimeSeries.Values, 10)
}

func TestAnalyzeEndpointRejectsShortPolygon(t *testing.T) {
	provider := &stubProvider{}
	app := newTestApp(provider)

	rec := postAnalyze(t, app, `{"polygon":[[10,20],[10.01,20]]}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "polygon")
}

func TestAnalyzeEndpointRejectsBadJSON(t *testing.T) {
	app := newTestApp(nil)

	rec := postAnalyze(t, app, `{"polygon": oops`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	app.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "2.0", body.Version)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOpenAPIEndpoint(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/openapi.yaml", nil)

	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/analyze")
}
