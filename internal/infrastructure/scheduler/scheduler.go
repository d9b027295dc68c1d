package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus is the outcome of the latest run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is a unit of background work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewJobFunc creates a named job from fn
func NewJobFunc(name string, fn func(ctx context.Context) error) JobFunc {
	return JobFunc{name: name, fn: fn}
}

// Name implements Job
func (j JobFunc) Name() string { return j.name }

// Run implements Job
func (j JobFunc) Run(ctx context.Context) error { return j.fn(ctx) }

// RunRecord describes the latest execution of a job
type RunRecord struct {
	Job         string
	Schedule    string
	Status      JobStatus
	Error       string
	StartedAt   time.Time
	CompletedAt time.Time
	NextRunAt   time.Time
}

type registration struct {
	job      Job
	schedule string
	entryID  cron.EntryID
	record   RunRecord
}

// Config holds scheduler configuration
type Config struct {
	// JobTimeout bounds a single run. Default: 5 minutes.
	JobTimeout time.Duration
}

// Scheduler runs registered jobs on cron schedules. A job never overlaps
// with itself; a tick that finds the job still running is skipped.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	jobs map[string]*registration

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler
func New(cfg Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{logger.Named("cron")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: cfg.JobTimeout,
		logger:  logger,
		jobs:    make(map[string]*registration),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register schedules job with a standard five-field cron expression or a
// descriptor such as "@every 10m"
func (s *Scheduler) Register(schedule string, job Job) error {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}

	reg := &registration{
		job:      job,
		schedule: schedule,
		record:   RunRecord{Job: job.Name(), Schedule: schedule, Status: JobStatusPending},
	}
	reg.entryID = s.cron.Schedule(sched, cron.FuncJob(func() {
		_ = s.execute(s.ctx, reg)
	}))
	s.jobs[job.Name()] = reg

	s.logger.Info("Job registered", zap.String("job", job.Name()), zap.String("schedule", schedule))
	return nil
}

// RunNow executes a registered job immediately on the caller's goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	reg, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(ctx, reg)
}

// Start begins firing schedules in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.Records())))
}

// Stop prevents new runs, cancels running ones and waits for them until ctx ends
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// Records returns the latest run of every job ordered by name
func (s *Scheduler) Records() []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RunRecord, 0, len(s.jobs))
	for _, reg := range s.jobs {
		rec := reg.record
		if entry := s.cron.Entry(reg.entryID); entry.Valid() {
			rec.NextRunAt = entry.Next
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

func (s *Scheduler) execute(parent context.Context, reg *registration) error {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	name := reg.job.Name()
	s.update(reg, func(r *RunRecord) {
		r.Status = JobStatusRunning
		r.StartedAt = time.Now()
		r.Error = ""
	})

	err := reg.job.Run(ctx)

	s.update(reg, func(r *RunRecord) {
		r.CompletedAt = time.Now()
		if err != nil {
			r.Status = JobStatusFailed
			r.Error = err.Error()
			return
		}
		r.Status = JobStatusSuccess
	})

	if err != nil {
		s.logger.Error("Job failed", zap.String("job", name), zap.Error(err))
		return err
	}
	s.logger.Debug("Job completed", zap.String("job", name))
	return nil
}

func (s *Scheduler) update(reg *registration, fn func(*RunRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&reg.record)
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Sugar().Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
