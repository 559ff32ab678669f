package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

// Recorder appends activity entries. Implementations are best-effort
// from the caller's point of view: a failed append is logged by the
// caller and never affects the primary mutation.
type Recorder interface {
	Record(ctx context.Context, action, description string, details map[string]any, userIP string) error
}

// MongoRecorder appends entries to a MongoDB collection.
type MongoRecorder struct {
	Collection *mongo.Collection
}

func (r *MongoRecorder) Record(ctx context.Context, action, description string, details map[string]any, userIP string) error {
	if details == nil {
		details = map[string]any{}
	}
	if userIP == "" {
		userIP = models.UnknownIP
	}
	entry := models.ActivityLog{
		Action:      action,
		Description: description,
		Details:     details,
		UserIP:      userIP,
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
	}
	_, err := r.Collection.InsertOne(ctx, entry)
	return err
}

// NopRecorder drops every entry. Used when the log store is not
// configured or unreachable at startup.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, string, map[string]any, string) error {
	return nil
}
