// internal/stats/usage.go
package stats

import (
	"sort"
	"strings"
	"time"

	"imgsafe-backend/internal/models"
)

// EndpointBucket is a tally of calls per normalized endpoint pattern for the
// endpoint distribution pie chart.
type EndpointBucket struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// DayBucket is a tally of calls per calendar day for the trend chart.
type DayBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DefaultParametricPrefixes lists the route prefixes whose trailing segment
// is a dynamic identifier. New parametric routes must be added here (or via
// config) rather than inferred; prefix matching is deliberately not a
// heuristic.
var DefaultParametricPrefixes = []string{
	"/api/auth/tokens/",
	"/api/auth/usage/token/",
}

// CollapseEndpoint replaces a trailing id segment after a known parametric
// prefix with a wildcard, so /api/auth/tokens/abc123 and
// /api/auth/tokens/xyz789 count as one pattern. Endpoints matching no prefix
// are returned verbatim.
func CollapseEndpoint(endpoint string, prefixes []string) string {
	for _, prefix := range prefixes {
		rest, found := strings.CutPrefix(endpoint, prefix)
		if !found || rest == "" {
			continue
		}
		// Only a single trailing segment is an id; deeper paths are
		// distinct routes.
		if !strings.Contains(rest, "/") {
			return prefix + "*"
		}
	}
	return endpoint
}

// AggregateByEndpoint tallies records per collapsed endpoint pattern. Every
// record is counted exactly once. Buckets are returned sorted by count
// descending (ties by pattern) so output is deterministic; consumers may
// re-sort for display.
func AggregateByEndpoint(records []models.UsageRecord, prefixes []string) []EndpointBucket {
	if prefixes == nil {
		prefixes = DefaultParametricPrefixes
	}

	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[CollapseEndpoint(rec.Endpoint, prefixes)]++
	}

	buckets := make([]EndpointBucket, 0, len(counts))
	for pattern, n := range counts {
		buckets = append(buckets, EndpointBucket{Pattern: pattern, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Pattern < buckets[j].Pattern
	})
	return buckets
}

// AggregateByDay tallies records per calendar date in the given location and
// returns the buckets in chronological order. Days with no records have no
// bucket. A nil location means the server's local time zone; pass time.UTC
// for zone-independent bucketing.
func AggregateByDay(records []models.UsageRecord, loc *time.Location) []DayBucket {
	if loc == nil {
		loc = time.Local
	}

	counts := make(map[string]int, len(records))
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			continue
		}
		counts[rec.Timestamp.In(loc).Format("2006-01-02")]++
	}

	buckets := make([]DayBucket, 0, len(counts))
	for date, n := range counts {
		buckets = append(buckets, DayBucket{Date: date, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}
