// Package daemon runs background maintenance tasks.
package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/Patrickdwa/PatrickBooks/internal/audit"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

// LogExporter periodically ships new activity entries to an external
// sink. The log store is append-only, so progress is tracked with an
// in-memory timestamp cursor instead of marking entries.
type LogExporter struct {
	Reader   *audit.Reader
	Interval time.Duration
	Export   func([]models.ActivityLog)

	lastSeen time.Time
}

// Run blocks until ctx is cancelled, exporting on each tick.
func (e *LogExporter) Run(ctx context.Context) {
	interval := e.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

func (e *LogExporter) tick(ctx context.Context) {
	entries := e.Reader.Since(ctx, e.lastSeen)
	if len(entries) == 0 {
		return
	}
	if e.Export != nil {
		e.Export(entries)
	}
	e.lastSeen = entries[len(entries)-1].Timestamp
	slog.Info("exported activity entries", "count", len(entries), "through", e.lastSeen)
}
