// internal/models/moderation.go
package models

// ModerationResult is the upstream moderation service's verdict for one
// image. ContentAnalysis is dynamically shaped: categories come and go
// depending on which detectors the upstream populated, so it is kept as a
// generic map and decoded defensively by the stats layer.
type ModerationResult struct {
	IsSafe  bool              `json:"is_safe"`
	Message string            `json:"message"`
	Details ModerationDetails `json:"details"`
}

type ModerationDetails struct {
	Violations      []string               `json:"violations,omitempty"`
	ContentAnalysis map[string]interface{} `json:"content_analysis,omitempty"`
}
