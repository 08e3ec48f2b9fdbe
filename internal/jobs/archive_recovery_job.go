package jobs

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type recoveryHandler interface {
	Handle(ctx context.Context, command commands.RecoverArchivesCommand) (int64, error)
}

// ArchiveRecoveryJob periodically runs the recovery sweep: it removes live
// notifications that were already archived, which happens when a process
// dies between the two archive steps, and rows left for deleted users.
type ArchiveRecoveryJob struct {
	handler  recoveryHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewArchiveRecoveryJob creates a job running handler on a cron schedule with
// seconds.
func NewArchiveRecoveryJob(handler recoveryHandler, schedule string, log *zap.Logger) *ArchiveRecoveryJob {
	log = logger.Component(log, "archive_recovery_job")
	return &ArchiveRecoveryJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(log),
		logger:   log,
	}
}

// Start schedules the sweep. It fails on an invalid schedule.
func (j *ArchiveRecoveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("archive recovery job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one sweep.
func (j *ArchiveRecoveryJob) Run() {
	// The handler logs repairs itself.
	if _, err := j.handler.Handle(context.Background(), commands.NewRecoverArchivesCommand()); err != nil {
		j.logger.Error("archive recovery failed", zap.Error(err))
	}
}

// Stop waits for a running sweep to finish.
func (j *ArchiveRecoveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("archive recovery job stopped")
}
