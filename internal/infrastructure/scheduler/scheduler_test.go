package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int64
	err  error
}

func (j *countingJob) Name() string        { return j.name }
func (j *countingJob) Description() string { return "counts executions" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestIntervalSchedule(t *testing.T) {
	sched := NewIntervalSchedule(10 * time.Minute)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(10*time.Minute), sched.Next(now))
	assert.Equal(t, "@every 10m0s", sched.String())
}

func TestRegisterValidation(t *testing.T) {
	s := NewScheduler(Config{})

	assert.ErrorIs(t, s.Register(nil, NewIntervalSchedule(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, s.Register(&countingJob{name: "a"}, nil), ErrNilSchedule)

	require.NoError(t, s.Register(&countingJob{name: "a"}, NewIntervalSchedule(time.Minute)))
	assert.ErrorIs(t, s.Register(&countingJob{name: "a"}, NewIntervalSchedule(time.Minute)), ErrJobAlreadyExists)
}

func TestRunNow(t *testing.T) {
	s := NewScheduler(Config{})
	job := &countingJob{name: "refresh"}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := s.RunNow(context.Background(), "refresh")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "refresh", result.JobName)
	assert.Equal(t, int64(1), job.runs.Load())

	_, err = s.RunNow(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRunNowRecordsFailure(t *testing.T) {
	s := NewScheduler(Config{})
	job := &countingJob{name: "flaky", err: errors.New("boom")}
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := s.RunNow(context.Background(), "flaky")
	require.Error(t, err)
	assert.False(t, result.Success)

	snap := s.GetMetrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalExecutions)
	assert.Equal(t, int64(1), snap.TotalFailures)
	assert.Equal(t, 0.0, snap.SuccessRate)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(Config{})
	require.NoError(t, s.Register(&countingJob{name: "idle"}, NewIntervalSchedule(time.Hour)))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
}

func TestListJobs(t *testing.T) {
	s := NewScheduler(Config{})
	require.NoError(t, s.Register(&countingJob{name: "refresh"}, NewIntervalSchedule(15*time.Minute)))

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "refresh", jobs[0].Name)
	assert.Equal(t, "@every 15m0s", jobs[0].Schedule)
	assert.True(t, jobs[0].Enabled)
	assert.False(t, jobs[0].NextRun.IsZero())
}
