package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatChartData_AbsentCategory(t *testing.T) {
	analysis := map[string]interface{}{
		"nudity": map[string]interface{}{"none": 0.9},
	}

	assert.Empty(t, FormatChartData(analysis, "weapon"))
	assert.Empty(t, FormatChartData(nil, "weapon"))
}

func TestFormatChartData_NonObjectCategory(t *testing.T) {
	analysis := map[string]interface{}{
		"violence": 0.5, // scalar where an object is expected
	}

	assert.Empty(t, FormatChartData(analysis, "violence"))
}

func TestFormatChartData_DropsNonNumericEntries(t *testing.T) {
	analysis := map[string]interface{}{
		"offensive": map[string]interface{}{
			"nazi":        0.8,
			"supremacist": 0.3,
			"flagged":     true,
			"note":        "reviewed",
			"classes":     map[string]interface{}{"x": 0.1},
		},
	}

	points := FormatChartData(analysis, "offensive")
	require.Len(t, points, 2)
	assert.Equal(t, ChartPoint{Name: "nazi", Value: 0.8}, points[0])
	assert.Equal(t, ChartPoint{Name: "supremacist", Value: 0.3}, points[1])
}

func TestFormatChartData_RoundsToThreeDecimals(t *testing.T) {
	analysis := map[string]interface{}{
		"nudity": map[string]interface{}{
			"suggestive": 0.123456,
			"partial":    0.9995,
			"raw":        0.0004,
		},
	}

	points := FormatChartData(analysis, "nudity")
	require.Len(t, points, 3)
	for _, p := range points {
		assert.Equal(t, round3(p.Value), p.Value, "value %v not rounded", p.Value)
	}
	// Every returned value stays within half a thousandth of its source.
	source := map[string]float64{"suggestive": 0.123456, "partial": 0.9995, "raw": 0.0004}
	for _, p := range points {
		assert.InDelta(t, source[p.Name], p.Value, 0.0005)
	}
}

func TestFormatChartData_SortsDescendingAndCapsAtTen(t *testing.T) {
	category := map[string]interface{}{}
	for i := 0; i < 15; i++ {
		category[string(rune('a'+i))] = float64(i) / 20.0
	}
	analysis := map[string]interface{}{"weapon": category}

	points := FormatChartData(analysis, "weapon")
	require.Len(t, points, 10)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].Value, points[i].Value)
	}
	// Cap keeps the highest values.
	assert.InDelta(t, 14.0/20.0, points[0].Value, 1e-9)
}

func TestFormatChartData_Idempotent(t *testing.T) {
	analysis := map[string]interface{}{
		"gore": map[string]interface{}{"blood": 0.6, "knife": 0.3},
	}

	first := FormatChartData(analysis, "gore")
	second := FormatChartData(analysis, "gore")
	assert.Equal(t, first, second)
}

func TestRound3_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.002, round3(0.0015))
	assert.Equal(t, -0.002, round3(-0.0015))
	assert.Equal(t, 0.123, round3(0.12349))
	assert.True(t, math.Signbit(round3(-0.0001)) || round3(-0.0001) == 0)
}
