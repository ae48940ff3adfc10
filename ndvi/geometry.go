package ndvi

import (
	"errors"
	"math"
)

// ErrPolygonTooShort is returned when a drawn polygon has fewer than 3 vertices.
var ErrPolygonTooShort = errors.New("polygon needs at least 3 points")

// Polygon is an ordered list of (lon, lat) vertices. It does not need to be
// closed or convex; only its bounding box and centroid matter here.
type Polygon [][2]float64

func (p Polygon) Validate() error {
	if len(p) < 3 {
		return ErrPolygonTooShort
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (p Polygon) Bounds() BoundingBox {
	bb := BoundingBox{
		MinLon: p[0][0], MinLat: p[0][1],
		MaxLon: p[0][0], MaxLat: p[0][1],
	}
	for _, v := range p[1:] {
		bb.MinLon = math.Min(bb.MinLon, v[0])
		bb.MaxLon = math.Max(bb.MaxLon, v[0])
		bb.MinLat = math.Min(bb.MinLat, v[1])
		bb.MaxLat = math.Max(bb.MaxLat, v[1])
	}
	return bb
}

// Centroid returns the vertex mean of the polygon.
func (p Polygon) Centroid() (lon, lat float64) {
	for _, v := range p {
		lon += v[0]
		lat += v[1]
	}
	n := float64(len(p))
	return lon / n, lat / n
}

// BoundingBox is a lon/lat envelope with MinLon <= MaxLon and MinLat <= MaxLat.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() (lon, lat float64) {
	return (b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2
}

// Steps returns the per-cell lon/lat increments for an n-by-n overlay grid.
func (b BoundingBox) Steps(n int) (lonStep, latStep float64) {
	return (b.MaxLon - b.MinLon) / float64(n), (b.MaxLat - b.MinLat) / float64(n)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundN(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
