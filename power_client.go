package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"agrokg/ndvi"

	"github.com/jonboulle/clockwork"
)

const powerDateLayout = "20060102"

// Substitutes for days where POWER reports precipitation but not the other
// parameters.
const (
	powerDefaultTempC = 20.0
	powerDefaultSolar = 15.0
)

// PowerClient derives a vegetation-index series from the NASA POWER daily
// point-query API. It implements ndvi.SeriesProvider; a nil series means the
// source is unavailable and the caller falls back to synthetic data.
type PowerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	clock      clockwork.Clock
}

func NewPowerClient(baseURL string, timeout time.Duration, logger *slog.Logger) *PowerClient {
	return &PowerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		clock:      clockwork.NewRealClock(),
	}
}

// FetchSeries queries precipitation, temperature and solar irradiance for the
// bounding-box center over the lookback window and converts them into a
// vegetation-index series.
func (c *PowerClient) FetchSeries(ctx context.Context, bbox ndvi.BoundingBox, days int) (*ndvi.Series, error) {
	end := c.clock.Now()
	start := end.AddDate(0, 0, -days)
	lon, lat := bbox.Center()

	params := url.Values{
		"parameters":    {"PRECTOTCORR,T2M,ALLSKY_SFC_SW_DWN"},
		"community":     {"AG"},
		"longitude":     {fmt.Sprintf("%.4f", lon)},
		"latitude":      {fmt.Sprintf("%.4f", lat)},
		"start":         {start.Format(powerDateLayout)},
		"end":           {end.Format(powerDateLayout)},
		"format":        {"JSON"},
		"time-standard": {"UTC"},
	}

	u := c.baseURL + "/api/temporal/daily/point?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "AgroKG/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("power request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("power API error: status %d: %s", resp.StatusCode, body)
	}

	var pr powerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	precip := pr.Properties.Parameter.Precip
	if len(precip) == 0 {
		return nil, nil
	}

	dates := make([]string, 0, len(precip))
	for d := range precip {
		if len(d) == len(powerDateLayout) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	climate := make([]ndvi.ClimateDay, 0, len(dates))
	for _, d := range dates {
		day := ndvi.ClimateDay{
			Date:   d[:4] + "-" + d[4:6] + "-" + d[6:],
			Precip: precip[d],
			TempC:  powerDefaultTempC,
			Solar:  powerDefaultSolar,
		}
		if t, ok := pr.Properties.Parameter.Temp[d]; ok {
			day.TempC = t
		}
		if s, ok := pr.Properties.Parameter.Solar[d]; ok {
			day.Solar = s
		}
		climate = append(climate, day)
	}

	series, ok := ndvi.SeriesFromClimate(climate, "NASA POWER")
	if !ok {
		c.logger.Warn("power series has too few valid days", "days", len(climate))
		return nil, nil
	}
	return series, nil
}

// POWER API response envelope.

type powerResponse struct {
	Properties struct {
		Parameter struct {
			Precip map[string]float64 `json:"PRECTOTCORR"`
			Temp   map[string]float64 `json:"T2M"`
			Solar  map[string]float64 `json:"ALLSKY_SFC_SW_DWN"`
		} `json:"parameter"`
	} `json:"properties"`
}
