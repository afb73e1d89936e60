package queues

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/atendezap/atendezap-admin/testing"
)

type stubInspector struct {
	infos    map[string]*asynq.QueueInfo
	paused   map[string]bool
	listErr  error
	pauseErr error
}

func newStubInspector(infos ...*asynq.QueueInfo) *stubInspector {
	s := &stubInspector{infos: make(map[string]*asynq.QueueInfo), paused: make(map[string]bool)}
	for _, info := range infos {
		s.infos[info.Queue] = info
	}
	return s
}

func (s *stubInspector) Queues() ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.infos))
	for name := range s.infos {
		names = append(names, name)
	}
	return names, nil
}

func (s *stubInspector) GetQueueInfo(qname string) (*asynq.QueueInfo, error) {
	info, ok := s.infos[qname]
	if !ok {
		return nil, errors.New("queue not found")
	}
	return info, nil
}

func (s *stubInspector) PauseQueue(qname string) error {
	if s.pauseErr != nil {
		return s.pauseErr
	}
	s.paused[qname] = true
	return nil
}

func (s *stubInspector) UnpauseQueue(qname string) error {
	s.paused[qname] = false
	return nil
}

func TestListSortsQueuesByName(t *testing.T) {
	inspector := newStubInspector(
		&asynq.QueueInfo{Queue: "low", Size: 3, Pending: 3, Latency: time.Second},
		&asynq.QueueInfo{Queue: "default", Size: 10, Active: 2, Pending: 8},
	)
	svc := NewService(inspector, nil)

	stats, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "default", stats[0].Name)
	assert.Equal(t, 10, stats[0].Size)
	assert.Equal(t, "low", stats[1].Name)
	assert.Equal(t, "1s", stats[1].Latency)
}

func TestListPropagatesInspectorError(t *testing.T) {
	inspector := newStubInspector()
	inspector.listErr = errors.New("broker offline")
	svc := NewService(inspector, nil)

	_, err := svc.List(context.Background())
	assert.EqualError(t, err, "broker offline")
}

func TestPauseAndResume(t *testing.T) {
	inspector := newStubInspector(&asynq.QueueInfo{Queue: "default"})
	svc := NewService(inspector, nil)

	require.NoError(t, svc.Pause(context.Background(), "default"))
	assert.True(t, inspector.paused["default"])

	require.NoError(t, svc.Resume(context.Background(), "default"))
	assert.False(t, inspector.paused["default"])
}

func TestPausePropagatesError(t *testing.T) {
	inspector := newStubInspector()
	inspector.pauseErr = errors.New("queue not found")
	svc := NewService(inspector, nil)

	assert.Error(t, svc.Pause(context.Background(), "ghost"))
}
