package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"agrokg/ndvi"
)

const (
	defaultCrop   = "wheat"
	defaultPeriod = 30

	// analyzeTimeout bounds one request including the external source calls;
	// a slow source falls back to synthetic data instead of failing.
	analyzeTimeout = 10 * time.Second
)

// handleHealth is the liveness endpoint.
func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{Status: "ok", Version: "2.0"})
}

// handleAnalyze runs the full vegetation analysis for a drawn polygon.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := a.clock.Now()

	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.metrics.AnalyzeRequests.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "bad json"})
		return
	}
	if req.Crop == "" {
		req.Crop = defaultCrop
	}
	if req.Period <= 0 {
		req.Period = defaultPeriod
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	analysis, err := ndvi.Analyze(ctx, req.Polygon, req.Crop, req.Period, a.power, a.newRand())
	if err != nil {
		if errors.Is(err, ndvi.ErrPolygonTooShort) {
			a.metrics.AnalyzeRequests.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
			return
		}
		a.metrics.AnalyzeRequests.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "analysis failed"})
		return
	}

	// Best-effort scene probe; enriches the summary, never fails the request.
	if a.stac != nil {
		if scene := a.stac.ProbeScene(ctx, req.Polygon.Bounds(), req.Period); scene != nil {
			analysis.Summary.Scene = scene
			a.logger.Info("scene available", "scene_id", scene.SceneID)
		}
	}

	a.metrics.AnalyzeRequests.WithLabelValues("ok").Inc()
	a.metrics.DataSource.WithLabelValues(analysis.DataSource).Inc()
	a.metrics.AnalyzeDuration.Observe(a.clock.Since(start).Seconds())
	a.logger.Info("analyze done",
		"crop", req.Crop,
		"period", req.Period,
		"source", analysis.DataSource,
		"health", analysis.Summary.Health,
	)

	writeJSON(w, http.StatusOK, analysis)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
