package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/pkg/ctxutil"
)

// Job is a named unit of background work run on a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Jobs returns the background jobs of the worker.
func Jobs(svcs *Services, cfg config.WorkerConfig) []Job {
	return []Job{
		{
			Name:     "reconcile",
			Schedule: cfg.ReconcileSchedule,
			Run: func(ctx context.Context) error {
				_, err := svcs.Engagement.Reconcile(ctx)
				return err
			},
		},
		{
			Name:     "complete-events",
			Schedule: cfg.CompleteEventsSchedule,
			Run: func(ctx context.Context) error {
				_, err := svcs.Events.CompleteElapsed(ctx, time.Now())
				return err
			},
		},
		{
			Name:     "dispatch-in-app",
			Schedule: cfg.DispatchSchedule,
			Run: func(ctx context.Context) error {
				_, err := svcs.Notifications.Dispatch(ctx, domain.ChannelInApp, cfg.DispatchBatch, deliverInApp)
				return err
			},
		},
	}
}

// deliverInApp accepts every notification: an in-app notification is
// delivered once it is readable by its recipient.
func deliverInApp(context.Context, domain.Notification) error {
	return nil
}

// Scheduler runs jobs on their cron schedules. A job never overlaps with
// itself; a run that is still going when the next tick fires skips the tick.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
	base    context.Context
}

// NewScheduler creates a scheduler whose job runs are bounded by timeout.
func NewScheduler(logger *slog.Logger, timeout time.Duration) *Scheduler {
	logger = logger.With("component", "scheduler")
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		log:     logger,
		timeout: timeout,
		base:    context.Background(),
	}
}

// Add registers jobs.
func (s *Scheduler) Add(jobs ...Job) error {
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.Schedule, func() { _ = s.RunJob(s.base, job) }); err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name, err)
		}
		s.log.Info("job scheduled", slog.String("job", job.Name), slog.String("schedule", job.Schedule))
	}
	return nil
}

// Start starts the scheduler. Job runs derive their context from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.base = ctx
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

// RunJob runs job once with the scheduler's timeout and logs the outcome.
func (s *Scheduler) RunJob(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx = ctxutil.WithJob(ctx, job.Name, uuid.NewString())

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.ErrorContext(ctx, "job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return err
	}
	s.log.InfoContext(ctx, "job completed", slog.Duration("duration", time.Since(start)))
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
