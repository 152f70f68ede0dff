// internal/stats/features.go
package stats

import (
	"sort"
	"strings"
)

// ProbabilityFeature is one labeled probability extracted from the content
// analysis, e.g. {Category: "Nudity", Feature: "Suggestive", Value: 0.5}.
type ProbabilityFeature struct {
	Category string  `json:"category"`
	Feature  string  `json:"feature"`
	Value    float64 `json:"value"`
}

// RiskFeature pairs an extracted feature with its display severity.
type RiskFeature struct {
	ProbabilityFeature
	Severity string `json:"severity"`
}

// scalarCategories are categories scored by a single "prob" field. Display
// names are fixed literals rather than humanized keys so "self-harm" renders
// as "Self-Harm".
var scalarCategories = []struct {
	key  string
	name string
}{
	{"violence", "Violence"},
	{"alcohol", "Alcohol"},
	{"recreational_drug", "Recreational Drug"},
	{"tobacco", "Tobacco"},
	{"self-harm", "Self-Harm"},
}

// ExtractTopProbabilities walks the full content analysis and returns every
// risk feature it can find, sorted descending by probability. The result is
// not truncated; callers decide how many top entries to display.
//
// Absent categories and non-numeric entries contribute nothing. Category
// shapes handled: flat label maps (nudity, offensive), scalar "prob" objects
// (violence, alcohol, recreational_drug, tobacco, self-harm), and
// prob-plus-classes objects (weapon, gore).
func ExtractTopProbabilities(analysis map[string]interface{}) []ProbabilityFeature {
	var features []ProbabilityFeature

	// Nudity: every numeric sub-label except the "none" score and the
	// context classifiers, which are scene descriptors, not risks.
	if nudity, ok := asObject(analysis["nudity"]); ok {
		for _, key := range sortedKeys(nudity) {
			if key == "none" || strings.Contains(key, "context") {
				continue
			}
			if v, ok := asNumber(nudity[key]); ok {
				features = append(features, ProbabilityFeature{Category: "Nudity", Feature: Humanize(key), Value: v})
			}
		}
	}

	if weapon, ok := asObject(analysis["weapon"]); ok {
		if classes, ok := asObject(weapon["classes"]); ok {
			for _, key := range sortedKeys(classes) {
				if v, ok := asNumber(classes[key]); ok {
					features = append(features, ProbabilityFeature{Category: "Weapon", Feature: Humanize(key), Value: v})
				}
			}
		}
	}

	for _, sc := range scalarCategories {
		if obj, ok := asObject(analysis[sc.key]); ok {
			if v, ok := asNumber(obj["prob"]); ok {
				features = append(features, ProbabilityFeature{Category: sc.name, Feature: sc.name, Value: v})
			}
		}
	}

	if offensive, ok := asObject(analysis["offensive"]); ok {
		for _, key := range sortedKeys(offensive) {
			if v, ok := asNumber(offensive[key]); ok {
				features = append(features, ProbabilityFeature{Category: "Offensive", Feature: Humanize(key), Value: v})
			}
		}
	}

	// Gore carries both an overall probability and per-class scores; both
	// are emitted.
	if gore, ok := asObject(analysis["gore"]); ok {
		if v, ok := asNumber(gore["prob"]); ok {
			features = append(features, ProbabilityFeature{Category: "Gore", Feature: "Gore Content", Value: v})
		}
		if classes, ok := asObject(gore["classes"]); ok {
			for _, key := range sortedKeys(classes) {
				if v, ok := asNumber(classes[key]); ok {
					features = append(features, ProbabilityFeature{Category: "Gore", Feature: Humanize(key), Value: v})
				}
			}
		}
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Value > features[j].Value
	})
	return features
}

// RankRiskFeatures is ExtractTopProbabilities with a severity label attached
// to each feature, ready for the moderation response.
func RankRiskFeatures(analysis map[string]interface{}) []RiskFeature {
	features := ExtractTopProbabilities(analysis)
	ranked := make([]RiskFeature, 0, len(features))
	for _, f := range features {
		ranked = append(ranked, RiskFeature{ProbabilityFeature: f, Severity: Severity(f.Value)})
	}
	return ranked
}
