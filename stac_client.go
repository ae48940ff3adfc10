package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"agrokg/ndvi"

	"github.com/jonboulle/clockwork"
)

// StacClient probes a STAC catalog for a recent low-cloud Sentinel-2 scene
// over the bounding box. Best effort only: every failure is logged and
// swallowed, the probe never affects the analysis.
type StacClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	clock      clockwork.Clock
}

func NewStacClient(baseURL string, timeout time.Duration, logger *slog.Logger) *StacClient {
	return &StacClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		clock:      clockwork.NewRealClock(),
	}
}

// ProbeScene returns scene metadata when a suitable scene exists, nil
// otherwise.
func (c *StacClient) ProbeScene(ctx context.Context, bbox ndvi.BoundingBox, days int) *ndvi.SceneInfo {
	end := c.clock.Now()
	start := end.AddDate(0, 0, -days)

	payload, err := json.Marshal(stacSearchReq{
		Collections: []string{"sentinel-2-l2a"},
		BBox:        []float64{bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat},
		Datetime:    start.Format("2006-01-02") + "/" + end.Format("2006-01-02"),
		Query:       map[string]any{"eo:cloud_cover": map[string]any{"lt": 20}},
		Limit:       1,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/stac/v1/search", bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "AgroKG/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("stac probe failed", "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("stac probe rejected", "status", resp.StatusCode)
		return nil
	}

	var sr stacSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		c.logger.Warn("stac decode failed", "err", err)
		return nil
	}
	if len(sr.Features) == 0 {
		return nil
	}
	return &ndvi.SceneInfo{SceneID: sr.Features[0].ID, Available: true}
}

type stacSearchReq struct {
	Collections []string       `json:"collections"`
	BBox        []float64      `json:"bbox"`
	Datetime    string         `json:"datetime"`
	Query       map[string]any `json:"query"`
	Limit       int            `json:"limit"`
}

type stacSearchResp struct {
	Features []struct {
		ID string `json:"id"`
	} `json:"features"`
}
