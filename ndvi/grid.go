package ndvi

import (
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
)

// GridSize is the fixed resolution of the synthesized overlay.
const GridSize = 10

const (
	gridMin = 0.05
	gridMax = 0.95

	cellNoiseSpan = 0.15 // symmetric, so each cell carries +-0.075
	hotspotRadius = 2.5
	stressDecay   = 3.0 // the depression fades linearly toward this distance
	edgeFactor    = 0.85
)

// Grid is a GridSize x GridSize field of vegetation indices, every cell in
// [gridMin, gridMax]. Built once per analysis, read-only afterwards.
type Grid [][]float64

// StressFactorFor picks the hotspot intensity for a seed average: fields that
// are already doing poorly get a deeper depression.
func StressFactorFor(avg float64) float64 {
	if avg < 0.45 {
		return 0.35
	}
	return 0.20
}

// Synthesize builds a spatially coherent grid anchored to avg. One random
// hotspot cell depresses its neighborhood smoothly, the outer ring is degraded
// toward the field edge, and every cell carries independent noise. The rng is
// supplied by the caller so tests can fix the seed.
func Synthesize(avg, stressFactor float64, rng *rand.Rand) Grid {
	// Hotspot center stays away from the border rows and columns.
	sx := 2 + rng.Intn(6)
	sy := 2 + rng.Intn(6)

	g := make(Grid, GridSize)
	for i := range g {
		row := make([]float64, GridSize)
		for j := range row {
			noise := (rng.Float64() - 0.5) * cellNoiseSpan
			v := avg + noise

			dist := math.Hypot(float64(i-sx), float64(j-sy))
			if dist < hotspotRadius {
				stress := stressFactor * (1 - dist/stressDecay)
				v *= 1 - stress
			}

			if i == 0 || j == 0 || i == GridSize-1 || j == GridSize-1 {
				v *= edgeFactor
			}

			row[j] = roundN(clamp(v, gridMin, gridMax), 4)
		}
		g[i] = row
	}
	return g
}

// Mean returns the average cell value.
func (g Grid) Mean() float64 {
	flat := make([]float64, 0, GridSize*GridSize)
	for _, row := range g {
		flat = append(flat, row...)
	}
	m, err := stats.Mean(flat)
	if err != nil {
		return 0
	}
	return m
}

// FractionBelow returns the share of cells strictly under t, in [0, 1].
func (g Grid) FractionBelow(t float64) float64 {
	var below, total int
	for _, row := range g {
		for _, v := range row {
			if v < t {
				below++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(below) / float64(total)
}
