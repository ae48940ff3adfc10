package main

import (
	"log/slog"
	"math/rand"

	"agrokg/ndvi"

	"github.com/jonboulle/clockwork"
)

// App wires configuration, external clients and instrumentation for the HTTP
// handlers. Nothing here is mutated after construction, so handlers can run
// concurrently without locking.
type App struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics
	clock   clockwork.Clock

	power ndvi.SeriesProvider
	stac  *StacClient
}

func newApp(cfg Config, logger *slog.Logger) *App {
	app := &App{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		clock:   clockwork.NewRealClock(),
		stac:    NewStacClient(cfg.StacURL, cfg.StacTimeout, logger),
	}
	if cfg.PowerEnabled {
		app.power = NewPowerClient(cfg.PowerURL, cfg.PowerTimeout, logger)
	}
	return app
}

// newRand returns a fresh per-request random source. Analyses are
// intentionally randomized; only the series average anchors to real input.
func (a *App) newRand() *rand.Rand {
	return rand.New(rand.NewSource(a.clock.Now().UnixNano()))
}
