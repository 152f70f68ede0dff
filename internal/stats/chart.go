// internal/stats/chart.go
package stats

import (
	"math"
	"sort"
)

// ChartPoint is one bar or pie segment for the dashboard charts.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// maxChartPoints caps per-category chart data at the top entries; the
// dashboard never renders more than this many bars.
const maxChartPoints = 10

// FormatChartData shapes one named category of the content analysis into a
// capped, sorted, rounded list. An absent category or a non-object value
// yields an empty slice, never an error. Non-numeric entries (flags, nested
// objects) are dropped.
func FormatChartData(analysis map[string]interface{}, category string) []ChartPoint {
	obj, ok := asObject(analysis[category])
	if !ok {
		return []ChartPoint{}
	}

	points := make([]ChartPoint, 0, len(obj))
	for _, name := range sortedKeys(obj) {
		if v, ok := asNumber(obj[name]); ok {
			points = append(points, ChartPoint{Name: name, Value: round3(v)})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})

	if len(points) > maxChartPoints {
		points = points[:maxChartPoints]
	}
	return points
}

// round3 rounds half away from zero to 3 decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
