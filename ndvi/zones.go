package ndvi

// StressThreshold is the index value under which a cell counts as stressed.
const StressThreshold = 0.4

// severityCells is the zone size at which severity becomes "high".
const severityCells = 4

// Cell addresses one grid position.
type Cell struct {
	Row int
	Col int
}

// Zone is one maximal 4-connected group of cells strictly below the stress
// threshold.
type Zone []Cell

// FindStressZones labels the connected components of cells strictly below
// threshold. Traversal uses an explicit stack so grid size never threatens the
// call stack; neighbor coordinates are bounds-checked before use.
func FindStressZones(g Grid, threshold float64) []Zone {
	n := len(g)
	visited := make([][]bool, n)
	for i := range visited {
		visited[i] = make([]bool, n)
	}

	var zones []Zone
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if visited[i][j] || g[i][j] >= threshold {
				continue
			}
			var zone Zone
			stack := []Cell{{i, j}}
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
					continue
				}
				if visited[c.Row][c.Col] || g[c.Row][c.Col] >= threshold {
					continue
				}
				visited[c.Row][c.Col] = true
				zone = append(zone, c)
				stack = append(stack,
					Cell{c.Row + 1, c.Col},
					Cell{c.Row - 1, c.Col},
					Cell{c.Row, c.Col + 1},
					Cell{c.Row, c.Col - 1},
				)
			}
			if len(zone) > 0 {
				zones = append(zones, zone)
			}
		}
	}
	return zones
}

// Severity grades a zone by extent.
func (z Zone) Severity() string {
	if len(z) >= severityCells {
		return "high"
	}
	return "medium"
}

// Bounds returns the inclusive row/col extent of the zone's cells.
func (z Zone) Bounds() (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = z[0].Row, z[0].Row
	minCol, maxCol = z[0].Col, z[0].Col
	for _, c := range z[1:] {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col < minCol {
			minCol = c.Col
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	return minRow, maxRow, minCol, maxCol
}
