package ndvi

import geojson "github.com/paulmach/go.geojson"

// cellClassLadder colors individual grid cells for map rendering. Its bounds
// are a display scale and intentionally differ from the diagnosis health
// ladder.
var cellClassLadder = []struct {
	upper float64
	color string
	label string
}{
	{0.25, "#d32f2f", HealthCritical},
	{0.40, "#f57c00", HealthPoor},
	{0.55, "#fbc02d", HealthMedium},
	{0.70, "#7cb342", HealthGood},
}

func cellClass(v float64) (color, label string) {
	for _, b := range cellClassLadder {
		if v < b.upper {
			return b.color, b.label
		}
	}
	return "#2e7d32", HealthExcellent
}

// cellRing builds the closed 5-point ring spanning grid rows i0..i1 and
// columns j0..j1 in geographic coordinates. Rows advance along longitude,
// columns along latitude.
func cellRing(b BoundingBox, i0, i1, j0, j1 int) [][][]float64 {
	lonStep, latStep := b.Steps(GridSize)
	lon := func(i int) float64 { return b.MinLon + float64(i)*lonStep }
	lat := func(j int) float64 { return b.MinLat + float64(j)*latStep }
	return [][][]float64{{
		{lon(i0), lat(j0)},
		{lon(i1), lat(j0)},
		{lon(i1), lat(j1)},
		{lon(i0), lat(j1)},
		{lon(i0), lat(j0)},
	}}
}

// HealthGridFeatures renders every grid cell as a closed GeoJSON polygon
// carrying its index value, display class and color.
func HealthGridFeatures(g Grid, b BoundingBox) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, GridSize*GridSize)
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			f := geojson.NewPolygonFeature(cellRing(b, i, i+1, j, j+1))
			color, label := cellClass(g[i][j])
			f.SetProperty("ndvi", g[i][j])
			f.SetProperty("health", label)
			f.SetProperty("color", color)
			features = append(features, f)
		}
	}
	return features
}

// ZoneFeatures renders each stress zone as the axis-aligned bounding rectangle
// of its cells. The true concave outline is deliberately not reconstructed.
func ZoneFeatures(zones []Zone, b BoundingBox) []*geojson.Feature {
	features := make([]*geojson.Feature, 0, len(zones))
	for _, z := range zones {
		minRow, maxRow, minCol, maxCol := z.Bounds()
		f := geojson.NewPolygonFeature(cellRing(b, minRow, maxRow+1, minCol, maxCol+1))
		f.SetProperty("type", "stress")
		f.SetProperty("severity", z.Severity())
		f.SetProperty("area_cells", len(z))
		features = append(features, f)
	}
	return features
}
