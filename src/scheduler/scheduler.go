// Package scheduler runs the periodic cache and retention jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
)

// Job is a unit of periodic work.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Entry
	timeout time.Duration
}

// New builds a scheduler using standard five field cron specs. A run that is still going
// when its next tick fires is skipped. timeout bounds each run; zero means no bound.
func New(timeout time.Duration) *Scheduler {
	log := logger.WithField("component", "Scheduler")
	adapter := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		log:     log,
		timeout: timeout,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers job under a cron schedule, for example "0 22 * * 1-5" or "@every 1h".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		_ = s.RunNow(context.Background(), job)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(map[string]interface{}{
		"schedule": schedule,
		"job":      job.Name(),
	}).Info("Job registered")
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.WithField("job", job.Name())
	log.Debug("Running job")
	start := time.Now()

	if err := job.Run(ctx); err != nil {
		log.WithError(err).Error("Job failed")
		return err
	}
	log.WithField("elapsed", time.Since(start).String()).Info("Job completed")
	return nil
}

// Entries reports the registered schedule.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger routes cron's own logging through logrus.
type cronLogger struct {
	log *logger.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(pairs(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).WithFields(pairs(keysAndValues)).Error(msg)
}

func pairs(kv []interface{}) logger.Fields {
	f := logger.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
