package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/foodboard/internal/config"
)

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (l *countingLoader) Load(context.Context) error {
	l.calls.Add(1)
	return l.err
}

type countingExporter struct {
	calls atomic.Int32
}

func (e *countingExporter) Export(context.Context) (int, error) {
	e.calls.Add(1)
	return 3, nil
}

func TestSchedulerRunsRefreshAndNotifies(t *testing.T) {
	loader := &countingLoader{err: errors.New("offline")}
	s := NewScheduler(config.DashboardConfig{RefreshSchedule: "@every 1s"}, loader, nil, nil)

	notified := make(chan error, 4)
	s.SetNotifier(func(job string, err error) {
		if job == JobRefresh {
			notified <- err
		}
	})

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.Jobs())

	select {
	case err := <-notified:
		assert.EqualError(t, err, "offline")
	case <-time.After(3 * time.Second):
		t.Fatal("refresh job did not run")
	}
	assert.GreaterOrEqual(t, loader.calls.Load(), int32(1))
}

func TestSchedulerExportJob(t *testing.T) {
	exporter := &countingExporter{}
	s := NewScheduler(config.DashboardConfig{ExportSchedule: "@every 1s"}, nil, exporter, nil)

	done := make(chan struct{}, 4)
	s.SetNotifier(func(job string, err error) {
		if job == JobExport && err == nil {
			done <- struct{}{}
		}
	})
	require.NoError(t, s.Start())
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("export job did not run")
	}
	assert.GreaterOrEqual(t, exporter.calls.Load(), int32(1))
}

func TestSchedulerSkipsDisabledJobs(t *testing.T) {
	s := NewScheduler(config.DashboardConfig{ExportSchedule: "@daily"}, &countingLoader{}, nil, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Zero(t, s.Jobs(), "empty refresh schedule and missing exporter register nothing")
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(config.DashboardConfig{RefreshSchedule: "every now and then"}, &countingLoader{}, nil, nil)
	assert.Error(t, s.Start())
}
