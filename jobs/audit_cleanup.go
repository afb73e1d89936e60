package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// AuditPruner removes audit entries older than a cutoff.
type AuditPruner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// AuditCleanupJob prunes audit log entries past the retention window.
type AuditCleanupJob struct {
	Pruner    AuditPruner
	Logger    *slog.Logger
	Retention time.Duration
}

// NewAuditCleanupJob initialises the cleanup handler.
func NewAuditCleanupJob(pruner AuditPruner, logger *slog.Logger, retention time.Duration) *AuditCleanupJob {
	return &AuditCleanupJob{Pruner: pruner, Logger: logger, Retention: retention}
}

// Handle executes the cleanup logic.
func (j *AuditCleanupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pruner == nil {
		return errors.New("audit cleanup: handler not configured")
	}
	var payload AuditCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	retention := j.Retention
	if payload.RetentionHours > 0 {
		retention = time.Duration(payload.RetentionHours) * time.Hour
	}
	if retention <= 0 {
		return asynq.SkipRetry
	}

	removed, err := j.Pruner.Cleanup(ctx, retention)
	if err != nil {
		if j.Logger != nil {
			j.Logger.Error("audit cleanup failed", slog.Any("error", err))
		}
		return err
	}
	if j.Logger != nil {
		j.Logger.Info("audit cleanup finished",
			slog.Int64("removed", removed),
			slog.Duration("retention", retention))
	}
	return nil
}
