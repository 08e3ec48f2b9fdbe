package jobs

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type deliveryHandler interface {
	Handle(ctx context.Context, command commands.DeliverNotificationsCommand) (commands.DeliveryReport, error)
}

// NotificationDeliveryJob runs one delivery pass per tick. A pass that is
// still running when the next tick fires makes that tick a no-op.
type NotificationDeliveryJob struct {
	handler  deliveryHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewNotificationDeliveryJob creates a job running handler on a cron schedule
// with seconds.
func NewNotificationDeliveryJob(handler deliveryHandler, schedule string, log *zap.Logger) *NotificationDeliveryJob {
	log = logger.Component(log, "notification_delivery_job")
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationDeliveryJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(log),
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the delivery pass. It fails on an invalid schedule.
func (j *NotificationDeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification delivery job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs a single pass. Exposed so a pass can be triggered outside the
// schedule.
func (j *NotificationDeliveryJob) Run() {
	report, err := j.handler.Handle(j.ctx, commands.NewDeliverNotificationsCommand())
	if err != nil {
		j.logger.Error("notification delivery pass failed", zap.Error(err), zap.Any("report", report))
		return
	}
	if report.IsEmpty() {
		return
	}

	j.logger.Info("notification delivery pass finished",
		zap.Int("claimed", report.Claimed),
		zap.Int("skipped", report.Skipped),
		zap.Int("sent", report.Sent),
		zap.Int("retrying", report.Retrying),
		zap.Int("failed", report.Failed),
		zap.Int("archived", report.Archived),
	)
}

// Stop cancels an in-flight pass and waits for it to return.
func (j *NotificationDeliveryJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("notification delivery job stopped")
}
