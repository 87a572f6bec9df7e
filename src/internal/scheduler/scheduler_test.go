package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadJobs(t *testing.T) {
	s := New(nil)

	require.Error(t, s.Register(Job{Spec: "* * * * *", Run: func(context.Context) error { return nil }}))
	require.Error(t, s.Register(Job{Name: "x", Spec: "not a cron", Run: func(context.Context) error { return nil }}))
	require.NoError(t, s.Register(Job{Name: "x", Spec: "0 0 * * *", Run: func(context.Context) error { return nil }}))
	assert.Len(t, s.jobs, 1)
	assert.Equal(t, 30*time.Minute, s.jobs[0].LockTTL)
}

func TestRunNowSkipsWhileLocked(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocalLocker()
	s := New(locker)

	var runs atomic.Int32
	job := Job{Name: "settlement", Spec: "0 0 * * *", Run: func(context.Context) error {
		runs.Add(1)
		return nil
	}}

	release, err := locker.Acquire(ctx, job.Name, time.Minute)
	require.NoError(t, err)
	s.RunNow(ctx, job)
	assert.EqualValues(t, 0, runs.Load())

	require.NoError(t, release(ctx))
	s.RunNow(ctx, job)
	assert.EqualValues(t, 1, runs.Load())
}

func TestRunNowReleasesLockAfterFailure(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	var runs atomic.Int32
	job := Job{Name: "expiry", Spec: "0 1 * * *", Run: func(context.Context) error {
		runs.Add(1)
		return errors.New("database unavailable")
	}}

	s.RunNow(ctx, job)
	s.RunNow(ctx, job)
	assert.EqualValues(t, 2, runs.Load())
}

func TestStartReturnsOnCancel(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Register(Job{Name: "noop", Spec: "0 0 * * *", Run: func(context.Context) error { return nil }}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
