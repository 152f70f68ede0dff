// internal/stats/severity.go
package stats

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Severity buckets a probability into one of three display levels. Boundary
// values belong to the higher bucket: 0.4 is medium, 0.7 is high.
func Severity(v float64) string {
	switch {
	case v >= 0.7:
		return SeverityHigh
	case v >= 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
