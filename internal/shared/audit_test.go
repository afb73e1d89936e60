package shared

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/atendezap/atendezap-admin/testing"
)

type recordingExecer struct {
	sql  string
	args []any
}

func (e *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestRecordStampsFreshTimestamp(t *testing.T) {
	execer := &recordingExecer{}
	logger := NewAuditLogger(execer)

	require.NoError(t, logger.Record(context.Background(), AuditLog{
		ActorID:  "p-1",
		Action:   "company.suspend",
		Entity:   "empresa",
		EntityID: "c-1",
	}))

	require.Len(t, execer.args, 6)
	occurredAt, ok := execer.args[5].(time.Time)
	require.True(t, ok)
	assert.False(t, occurredAt.IsZero())
	assert.WithinDuration(t, time.Now(), occurredAt, 2*time.Second)
}

func TestRecordKeepsExplicitTimestamp(t *testing.T) {
	execer := &recordingExecer{}
	logger := NewAuditLogger(execer)

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, logger.Record(context.Background(), AuditLog{
		ActorID:  "p-1",
		Action:   "plan.update",
		Entity:   "plan",
		EntityID: "pl-1",
		At:       at,
	}))

	require.Len(t, execer.args, 6)
	assert.Equal(t, at, execer.args[5])
}

func TestRecordRejectsIncompleteEntry(t *testing.T) {
	logger := NewAuditLogger(&recordingExecer{})

	err := logger.Record(context.Background(), AuditLog{Action: "x"})
	assert.Error(t, err)
}

func TestCleanupUsesRetentionCutoff(t *testing.T) {
	execer := &recordingExecer{}
	logger := NewAuditLogger(execer)

	_, err := logger.Cleanup(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	require.Len(t, execer.args, 1)
	cutoff, ok := execer.args[0].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), cutoff, 2*time.Second)
}
