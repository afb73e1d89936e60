package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const defaultStaleAfter = 5 * time.Minute

// ConnectionMarker downgrades connections that stopped reporting pings.
type ConnectionMarker interface {
	MarkStatuses(ctx context.Context, status string, olderThan time.Duration) (int64, error)
}

// ConnectionsSyncJob reconciles WhatsApp connection statuses against
// the last ping each connection reported.
type ConnectionsSyncJob struct {
	Marker ConnectionMarker
	Logger *slog.Logger
}

// NewConnectionsSyncJob initialises the sync handler.
func NewConnectionsSyncJob(marker ConnectionMarker, logger *slog.Logger) *ConnectionsSyncJob {
	return &ConnectionsSyncJob{Marker: marker, Logger: logger}
}

// Handle executes the sync logic.
func (j *ConnectionsSyncJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Marker == nil {
		return errors.New("connections sync: handler not configured")
	}
	var payload ConnectionsSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	staleAfter := defaultStaleAfter
	if payload.StaleAfterMinutes > 0 {
		staleAfter = time.Duration(payload.StaleAfterMinutes) * time.Minute
	}

	affected, err := j.Marker.MarkStatuses(ctx, "desconectado", staleAfter)
	if err != nil {
		if j.Logger != nil {
			j.Logger.Error("connections sync failed", slog.Any("error", err))
		}
		return err
	}
	if j.Logger != nil {
		j.Logger.Info("connections sync finished",
			slog.Int64("downgraded", affected),
			slog.Duration("stale_after", staleAfter))
	}
	return nil
}
