package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTopProbabilities_NudityExcludesNoneAndContext(t *testing.T) {
	analysis := map[string]interface{}{
		"nudity": map[string]interface{}{
			"none":            0.9,
			"suggestive":      0.5,
			"context_general": 0.1,
		},
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 1)
	assert.Equal(t, ProbabilityFeature{Category: "Nudity", Feature: "Suggestive", Value: 0.5}, features[0])
}

func TestExtractTopProbabilities_GoreProbAndClasses(t *testing.T) {
	analysis := map[string]interface{}{
		"gore": map[string]interface{}{
			"prob": 0.8,
			"classes": map[string]interface{}{
				"knife": 0.3,
				"blood": 0.6,
			},
		},
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 3)
	assert.Equal(t, ProbabilityFeature{Category: "Gore", Feature: "Gore Content", Value: 0.8}, features[0])
	assert.Equal(t, ProbabilityFeature{Category: "Gore", Feature: "Blood", Value: 0.6}, features[1])
	assert.Equal(t, ProbabilityFeature{Category: "Gore", Feature: "Knife", Value: 0.3}, features[2])
}

func TestExtractTopProbabilities_ScalarCategories(t *testing.T) {
	analysis := map[string]interface{}{
		"violence":          map[string]interface{}{"prob": 0.2},
		"alcohol":           map[string]interface{}{"prob": 0.9},
		"recreational_drug": map[string]interface{}{"prob": 0.4},
		"tobacco":           map[string]interface{}{"prob": 0.1},
		"self-harm":         map[string]interface{}{"prob": 0.6},
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 5)

	// Globally sorted descending by value.
	wantOrder := []string{"Alcohol", "Self-Harm", "Recreational Drug", "Violence", "Tobacco"}
	for i, f := range features {
		assert.Equal(t, wantOrder[i], f.Feature)
		assert.Equal(t, wantOrder[i], f.Category)
	}
}

func TestExtractTopProbabilities_WeaponClasses(t *testing.T) {
	analysis := map[string]interface{}{
		"weapon": map[string]interface{}{
			"classes": map[string]interface{}{
				"firearm":         0.7,
				"knife":           0.2,
				"firearm_gesture": 0.1,
			},
		},
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 3)
	assert.Equal(t, ProbabilityFeature{Category: "Weapon", Feature: "Firearm", Value: 0.7}, features[0])
	assert.Equal(t, "Firearm Gesture", features[2].Feature)
}

func TestExtractTopProbabilities_MissingProbIsOmitted(t *testing.T) {
	analysis := map[string]interface{}{
		"violence": map[string]interface{}{"classes": map[string]interface{}{}},
		"gore":     map[string]interface{}{"classes": map[string]interface{}{"blood": 0.4}},
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 1)
	assert.Equal(t, "Blood", features[0].Feature)
}

func TestExtractTopProbabilities_EmptyAnalysis(t *testing.T) {
	assert.Empty(t, ExtractTopProbabilities(nil))
	assert.Empty(t, ExtractTopProbabilities(map[string]interface{}{}))
}

func TestExtractTopProbabilities_MalformedEntriesDropped(t *testing.T) {
	analysis := map[string]interface{}{
		"offensive": map[string]interface{}{
			"nazi":   "high", // not numeric
			"symbol": 0.3,
		},
		"nudity": "blocked", // not an object
	}

	features := ExtractTopProbabilities(analysis)
	require.Len(t, features, 1)
	assert.Equal(t, ProbabilityFeature{Category: "Offensive", Feature: "Symbol", Value: 0.3}, features[0])
}

// Decoding a real upstream payload end to end keeps the extractor honest
// about JSON number handling.
func TestExtractTopProbabilities_FromJSON(t *testing.T) {
	payload := `{
		"is_safe": false,
		"message": "Image contains inappropriate content",
		"details": {
			"violations": ["nudity"],
			"content_analysis": {
				"nudity": {"none": 0.01, "sexual_activity": 0.85, "suggestive": 0.4, "context_sea_lake_pool": 0.2},
				"weapon": {"classes": {"firearm": 0.05}},
				"gore": {"prob": 0.02}
			}
		}
	}`

	var result struct {
		Details struct {
			ContentAnalysis map[string]interface{} `json:"content_analysis"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	features := ExtractTopProbabilities(result.Details.ContentAnalysis)
	require.Len(t, features, 4)
	assert.Equal(t, "Sexual Activity", features[0].Feature)
	assert.Equal(t, 0.85, features[0].Value)
	assert.Equal(t, "Suggestive", features[1].Feature)
	assert.Equal(t, "Firearm", features[2].Feature)
	assert.Equal(t, "Gore Content", features[3].Feature)
}

func TestRankRiskFeatures_AttachesSeverity(t *testing.T) {
	analysis := map[string]interface{}{
		"gore":     map[string]interface{}{"prob": 0.8},
		"violence": map[string]interface{}{"prob": 0.4},
		"tobacco":  map[string]interface{}{"prob": 0.1},
	}

	ranked := RankRiskFeatures(analysis)
	require.Len(t, ranked, 3)
	assert.Equal(t, SeverityHigh, ranked[0].Severity)
	assert.Equal(t, SeverityMedium, ranked[1].Severity)
	assert.Equal(t, SeverityLow, ranked[2].Severity)
}

func TestExtractTopProbabilities_Idempotent(t *testing.T) {
	analysis := map[string]interface{}{
		"nudity": map[string]interface{}{"suggestive": 0.5, "partial": 0.5},
		"gore":   map[string]interface{}{"prob": 0.5},
	}

	first := ExtractTopProbabilities(analysis)
	second := ExtractTopProbabilities(analysis)
	assert.Equal(t, first, second)
}
