package background

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"adminportal/internal/models"

	"github.com/go-co-op/gocron/v2"
)

const StaleTempPasswordJob = "stale-temp-password-report"

// StaleTemporaryLister finds trainers who never rotated an admin-issued
// temporary password.
type StaleTemporaryLister interface {
	StaleTemporaryPasswords(ctx context.Context, maxAge time.Duration) ([]*models.Trainer, error)
}

type SchedulerConfig struct {
	ReportInterval     time.Duration
	TempPasswordMaxAge time.Duration
}

// JobScheduler runs the trainer service's periodic jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	trainers  StaleTemporaryLister
	cfg       SchedulerConfig
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(trainers StaleTemporaryLister, cfg SchedulerConfig) (*JobScheduler, error) {
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = time.Hour
	}
	if cfg.TempPasswordMaxAge <= 0 {
		cfg.TempPasswordMaxAge = 72 * time.Hour
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobScheduler{
		scheduler: scheduler,
		trainers:  trainers,
		cfg:       cfg,
		logger:    slog.Default().With("module", "scheduler"),
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", "jobs", len(js.JobNames()))
	js.scheduler.Start()
}

// Stop cancels running tasks and waits for them to return.
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(js.cfg.ReportInterval),
		gocron.NewTask(js.reportStaleTemporaryPasswords, js.ctx),
		gocron.WithName(StaleTempPasswordJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", StaleTempPasswordJob, err)
	}

	js.mu.Lock()
	js.jobs[StaleTempPasswordJob] = job
	js.mu.Unlock()
	return nil
}

// reportStaleTemporaryPasswords logs the ids of trainers still holding an
// old temporary password. The secret itself is never logged.
func (js *JobScheduler) reportStaleTemporaryPasswords(ctx context.Context) error {
	trainers, err := js.trainers.StaleTemporaryPasswords(ctx, js.cfg.TempPasswordMaxAge)
	if err != nil {
		js.logger.Error("stale temporary password report failed", "error", err)
		return err
	}
	if len(trainers) == 0 {
		js.logger.Debug("no stale temporary passwords")
		return nil
	}

	ids := make([]int64, 0, len(trainers))
	for _, t := range trainers {
		ids = append(ids, t.ID)
	}
	js.logger.Warn("trainers have not replaced their temporary password",
		"count", len(ids),
		"trainer_ids", ids,
		"max_age", js.cfg.TempPasswordMaxAge.String(),
	)
	return nil
}

// RemoveJob unschedules a job by name. Unknown names are ignored.
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
