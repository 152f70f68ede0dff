// internal/models/usage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageRecord is one logged API call. Endpoint is the raw request path and
// may embed a dynamic id segment (e.g. /api/auth/tokens/abc123); the stats
// layer collapses those when aggregating.
type UsageRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Token     string             `bson:"token" json:"token"`
	Endpoint  string             `bson:"endpoint" json:"endpoint"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
