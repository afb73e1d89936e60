package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskConnectionsSync refreshes WhatsApp connection statuses.
	TaskConnectionsSync = "integrations:connections_sync"
	// TaskAuditCleanup prunes audit entries past retention.
	TaskAuditCleanup = "audit:cleanup"
)

// ConnectionsSyncPayload tunes the staleness cutoff for a sync run.
type ConnectionsSyncPayload struct {
	StaleAfterMinutes int `json:"stale_after_minutes"`
}

// NewConnectionsSyncTask constructs a sync task with default settings.
func NewConnectionsSyncTask() (*asynq.Task, error) {
	data, err := json.Marshal(ConnectionsSyncPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskConnectionsSync, data), nil
}

// AuditCleanupPayload tunes the retention window for a cleanup run.
type AuditCleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewAuditCleanupTask constructs an audit cleanup task.
func NewAuditCleanupTask(retentionHours int) (*asynq.Task, error) {
	data, err := json.Marshal(AuditCleanupPayload{RetentionHours: retentionHours})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditCleanup, data), nil
}
