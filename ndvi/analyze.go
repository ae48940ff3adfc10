// Package ndvi synthesizes a vegetation-health grid for a field polygon,
// detects contiguous stress zones, derives a short-term forecast and a
// rule-based recommendation. Everything is recomputed per call; the package
// holds no cross-request state.
package ndvi

import (
	"context"
	"math/rand"

	geojson "github.com/paulmach/go.geojson"
)

// SeriesProvider fetches a real vegetation-index series for a bounding box
// over a lookback window in days. A nil series or an error both mean the
// source is unavailable; the caller then uses the synthetic fallback.
type SeriesProvider interface {
	FetchSeries(ctx context.Context, bbox BoundingBox, days int) (*Series, error)
}

// SceneInfo identifies a satellite scene covering the bounding box. Purely
// informational; it never affects the analysis.
type SceneInfo struct {
	SceneID   string `json:"scene_id"`
	Available bool   `json:"available"`
}

// Coordinate is a lat/lon pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Summary condenses one analysis for list views and dashboards.
type Summary struct {
	Health        string     `json:"health"`
	StressPercent float64    `json:"stress_percent"`
	AvgNDVI       float64    `json:"avg_ndvi"`
	Center        Coordinate `json:"center"`
	Scene         *SceneInfo `json:"scene,omitempty"`
}

// Analysis is the full payload of one analyze run.
type Analysis struct {
	HealthGrid     []*geojson.Feature `json:"health_grid"`
	StressZones    []*geojson.Feature `json:"stress_zones"`
	TimeSeries     Series             `json:"time_series"`
	Forecast       Series             `json:"forecast"`
	Recommendation string             `json:"recommendation"`
	DataSource     string             `json:"data_source"`
	Summary        Summary            `json:"summary"`
}

// DefaultBaseIndex seeds the synthetic series when no real data is available.
const DefaultBaseIndex = 0.5

// Analyze runs the full pipeline for one polygon: resolve a series (real when
// the provider delivers one, synthetic otherwise), synthesize the grid around
// the series average, detect stress zones, forecast, classify. External-source
// failure is never an error; the only error is an invalid polygon.
func Analyze(ctx context.Context, poly Polygon, crop string, periodDays int, provider SeriesProvider, rng *rand.Rand) (*Analysis, error) {
	if err := poly.Validate(); err != nil {
		return nil, err
	}
	bbox := poly.Bounds()
	centerLon, centerLat := poly.Centroid()

	var series Series
	if provider != nil {
		if s, err := provider.FetchSeries(ctx, bbox, periodDays); err == nil && s != nil && len(s.Values) >= minValidDays {
			series = *s
			series.Tail(periodDays)
		}
	}
	if series.Source == "" {
		series = Synthetic(periodDays, DefaultBaseIndex, rng)
	}

	avg := series.Mean(DefaultBaseIndex)
	grid := Synthesize(avg, StressFactorFor(avg), rng)
	zones := FindStressZones(grid, StressThreshold)
	diag := Recommend(grid, series.Values, crop, series.Source)

	return &Analysis{
		HealthGrid:     HealthGridFeatures(grid, bbox),
		StressZones:    ZoneFeatures(zones, bbox),
		TimeSeries:     series,
		Forecast:       ForecastSeries(series.Values, rng),
		Recommendation: diag.Narrative,
		DataSource:     series.Source,
		Summary: Summary{
			Health:        diag.Health,
			StressPercent: roundN(diag.StressPercent, 1),
			AvgNDVI:       roundN(diag.AvgIndex, 3),
			Center:        Coordinate{Lat: roundN(centerLat, 5), Lon: roundN(centerLon, 5)},
		},
	}, nil
}
