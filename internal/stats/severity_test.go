package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0.0, SeverityLow},
		{"just below medium", 0.399, SeverityLow},
		{"medium boundary", 0.4, SeverityMedium},
		{"mid medium", 0.55, SeverityMedium},
		{"just below high", 0.699, SeverityMedium},
		{"high boundary", 0.7, SeverityHigh},
		{"certain", 1.0, SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Severity(tt.value))
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"suggestive", "Suggestive"},
		{"recreational_drug", "Recreational Drug"},
		{"very_bloody", "Very Bloody"},
		{"firearm_gesture", "Firearm Gesture"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Humanize(tt.in))
	}
}
