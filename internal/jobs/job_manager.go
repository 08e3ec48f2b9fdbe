package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs  []job
	names []string
}

// NewJobManager wires the delivery and recovery jobs.
func NewJobManager(delivery *NotificationDeliveryJob, recovery *ArchiveRecoveryJob) *JobManager {
	return &JobManager{
		jobs:  []job{delivery, recovery},
		names: []string{"notification delivery", "archive recovery"},
	}
}

// StartAll starts every job. If one fails to start, the ones already
// running are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

// StopAll stops jobs in reverse start order and waits for running passes.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}

func newCron(log *zap.Logger) *cron.Cron {
	cl := cronLogger{log.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// cronLogger lets cron report panics and skipped runs through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

// Info logs cron chatter at debug level.
func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

// Error logs a cron failure.
func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
