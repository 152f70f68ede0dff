// Package stats turns the upstream moderation service's deeply nested score
// payloads and raw usage logs into small, stable, ranked views for the
// dashboard: top-risk feature lists, per-category chart data, endpoint and
// daily usage buckets, and per-token usage counts.
//
// Every function here is pure and side-effect free except FetchTokenCounts,
// which fans out concurrent reads through a caller-supplied fetcher. Missing
// or malformed input is never an error: absent categories contribute nothing
// and non-numeric entries are dropped.
package stats

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// asObject reports whether v decoded from JSON as an object.
func asObject(v interface{}) (map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	return obj, ok
}

// asNumber reports whether v is numeric. JSON decoding yields float64, but
// hand-built maps (tests, fixtures) may carry int values.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// sortedKeys fixes an enumeration order for a decoded JSON object. Go maps
// are unordered, so lexicographic key order is applied before any stable
// value sort to keep output deterministic for identical input.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Humanize turns a raw sub-label like "recreational_drug" into a display
// name like "Recreational Drug".
func Humanize(label string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(label, "_", " "))
}
