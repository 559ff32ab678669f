package audit

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

// RecentLimit caps the dashboard's activity listing.
const RecentLimit = 100

// Reader queries the activity log. All methods degrade — empty slice or
// zero — when the log store is unavailable, so the dashboard renders
// regardless.
type Reader struct {
	Collection *mongo.Collection
}

// Recent returns up to RecentLimit entries, newest first.
func (r *Reader) Recent(ctx context.Context) []models.ActivityLog {
	if r.Collection == nil {
		return nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(RecentLimit)
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		slog.Error("audit: recent query failed", "error", err)
		return nil
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityLog
	if err := cursor.All(ctx, &entries); err != nil {
		slog.Error("audit: decoding entries failed", "error", err)
		return nil
	}
	return entries
}

// Count reports the total number of entries, or 0 when the log store
// cannot be reached.
func (r *Reader) Count(ctx context.Context) int64 {
	if r.Collection == nil {
		return 0
	}
	n, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		slog.Error("audit: count failed", "error", err)
		return 0
	}
	return n
}

// Since returns entries strictly newer than after, oldest first, for
// the exporter daemon.
func (r *Reader) Since(ctx context.Context, after time.Time) []models.ActivityLog {
	if r.Collection == nil {
		return nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"timestamp": bson.M{"$gt": after}}, opts)
	if err != nil {
		slog.Error("audit: since query failed", "error", err)
		return nil
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityLog
	if err := cursor.All(ctx, &entries); err != nil {
		slog.Error("audit: decoding entries failed", "error", err)
		return nil
	}
	return entries
}
