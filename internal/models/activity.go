package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownIP is recorded when the caller's network address cannot be
// determined.
const UnknownIP = "UNKNOWN"

// ActivityLog is an append-only audit record. Entries are never updated
// or deleted once written.
type ActivityLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action      string             `bson:"action" json:"action"`
	Description string             `bson:"description" json:"description"`
	Details     map[string]any     `bson:"details" json:"details"`
	UserIP      string             `bson:"user_ip" json:"user_ip"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
