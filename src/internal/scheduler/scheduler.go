package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/lock"
	"github.com/api-sage/bank-ledger/src/internal/adapter/metrics"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/robfig/cron/v3"
)

// Job is one periodic unit of work. Run gets a context cancelled on shutdown.
type Job struct {
	Name    string
	Spec    string
	LockTTL time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler runs jobs on cron specs. A job run that finds its lock held is
// skipped, so a slow run never overlaps the next tick.
type Scheduler struct {
	cron   *cron.Cron
	locker lock.Locker
	jobs   []Job
}

func New(locker lock.Locker) *Scheduler {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &Scheduler{
		cron:   cron.New(),
		locker: locker,
	}
}

func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Run == nil {
		return errors.New("scheduler job needs a name and a run function")
	}
	if job.LockTTL <= 0 {
		job.LockTTL = 30 * time.Minute
	}
	if _, err := cron.ParseStandard(job.Spec); err != nil {
		return fmt.Errorf("parse schedule for job %s: %w", job.Name, err)
	}
	s.jobs = append(s.jobs, job)
	return nil
}

// Start schedules every registered job and blocks until ctx is done. In-flight
// runs are awaited before it returns.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, job := range s.jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() { s.RunNow(ctx, job) }); err != nil {
			return fmt.Errorf("schedule job %s: %w", job.Name, err)
		}
		logger.Info("scheduler job registered", logger.Fields{"job": job.Name, "spec": job.Spec})
	}

	s.cron.Start()
	<-ctx.Done()

	logger.Info("scheduler stopping", nil)
	<-s.cron.Stop().Done()
	return nil
}

// RunNow executes job once under its lock.
func (s *Scheduler) RunNow(ctx context.Context, job Job) {
	fields := logger.Fields{"job": job.Name}

	release, err := s.locker.Acquire(ctx, job.Name, job.LockTTL)
	if errors.Is(err, lock.ErrLockHeld) {
		logger.Warn("scheduler job skipped, previous run still active", fields)
		return
	}
	if err != nil {
		logger.Error("scheduler job lock failed", err, fields)
		return
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Error("scheduler job unlock failed", err, fields)
		}
	}()

	started := time.Now()
	defer metrics.ObserveJob("scheduled_"+job.Name, started)

	logger.Info("scheduler job started", fields)
	if err := job.Run(ctx); err != nil {
		logger.Error("scheduler job failed", err, fields)
		return
	}
	fields["durationMs"] = time.Since(started).Milliseconds()
	logger.Info("scheduler job completed", fields)
}
