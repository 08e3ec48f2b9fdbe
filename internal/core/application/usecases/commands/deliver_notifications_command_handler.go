package commands

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DeliverNotificationsCommandHandler emails due notifications and moves
// finished ones to history.
//
// A notification is only touched by the worker holding its claim. The email
// goes out before the result is stored, so a crash in between leads to a
// second send once the claim expires: delivery is at-least-once. Archiving
// inserts history and deletes the live row in one transaction, and history
// ignores duplicates, so every notification ends up in history exactly once.
type DeliverNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	mailer     ports.Mailer
	registry   ports.SendRegistry
	policy     notification.RetryPolicy
	clock      kernel.Clock
	settings   DeliverySettings
	logger     *zap.Logger
}

// NewDeliverNotificationsCommandHandler builds the handler. registry may be
// nil, in which case every attempt sends.
func NewDeliverNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	mailer ports.Mailer,
	registry ports.SendRegistry,
	policy notification.RetryPolicy,
	clock kernel.Clock,
	settings DeliverySettings,
	logger *zap.Logger,
) DeliverNotificationsCommandHandler {
	if registry == nil {
		registry = noopSendRegistry{}
	}
	settings.Workers = max(settings.Workers, 1)

	return DeliverNotificationsCommandHandler{
		uowFactory: uowFactory,
		mailer:     mailer,
		registry:   registry,
		policy:     policy,
		clock:      clock,
		settings:   settings,
		logger:     logger,
	}
}

// Handle runs one pass. Failures on single notifications do not stop the
// others; they are returned together once the pass is over.
func (h DeliverNotificationsCommandHandler) Handle(
	ctx context.Context,
	command DeliverNotificationsCommand,
) (DeliveryReport, error) {
	if err := command.Validate(); err != nil {
		return DeliveryReport{}, err
	}

	start := time.Now()
	defer func() {
		metrics.DeliveryBatchDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := h.uowFactory.Create().NotificationRepository().ListDeliverable(ctx, h.clock(), h.settings.BatchSize)
	if err != nil {
		return DeliveryReport{}, err
	}

	var (
		mu      sync.Mutex
		report  DeliveryReport
		passErr error
	)

	var g errgroup.Group
	g.SetLimit(h.settings.Workers)
	for _, id := range ids {
		g.Go(func() error {
			var one DeliveryReport
			err := h.deliverOne(ctx, id, &one)

			mu.Lock()
			defer mu.Unlock()
			report = report.merge(one)
			if err != nil {
				h.logger.Warn("notification delivery failed",
					zap.String("notification_id", id.String()),
					zap.Error(err),
				)
				passErr = multierr.Append(passErr, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return report, passErr
}

func (h DeliverNotificationsCommandHandler) deliverOne(ctx context.Context, id kernel.UUID, report *DeliveryReport) error {
	repo := h.uowFactory.Create().NotificationRepository()
	worker := h.settings.Worker

	claimed, err := repo.Claim(ctx, id, worker, h.clock(), h.settings.ClaimTTL)
	if err != nil {
		return err
	}
	if !claimed {
		report.Skipped++
		return nil
	}
	report.Claimed++

	n, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		report.Skipped++
		return nil
	}
	if err != nil {
		return errors.Join(err, repo.Release(context.WithoutCancel(ctx), id, worker))
	}

	if !n.DeliveryStatus().IsTerminal() {
		if err = h.attempt(ctx, n, report); err != nil {
			return errors.Join(err, repo.Release(context.WithoutCancel(ctx), id, worker))
		}

		if err = repo.UpdateDelivery(ctx, n, worker); err != nil {
			if errors.Is(err, ports.ErrClaimLost) {
				report.Skipped++
				return nil
			}
			// The claim is kept and expires by itself.
			return err
		}
	}

	if !n.DeliveryStatus().IsTerminal() {
		report.Retrying++
		return repo.Release(ctx, id, worker)
	}

	if n.DeliveryStatus() == notification.DeliveryFailed {
		report.Failed++
	}
	return h.archive(ctx, n, report)
}

// attempt sends the email of n and records the outcome on n. It only
// returns an error when no outcome could be decided.
func (h DeliverNotificationsCommandHandler) attempt(
	ctx context.Context,
	n *notification.Notification,
	report *DeliveryReport,
) error {
	log := h.logger.With(zap.String("notification_id", n.ID().String()))

	recipient, err := h.uowFactory.Create().UserRepository().Get(ctx, n.RecipientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		metrics.DeliveryAttempts.WithLabelValues("permanent").Inc()
		log.Warn("notification recipient is gone", zap.Error(err))
		return n.RecordFailure(err, false, h.clock(), h.policy)
	}
	if err != nil {
		return err
	}

	id := n.ID().String()
	if h.registry.WasSent(ctx, id) {
		metrics.DeliveryAttempts.WithLabelValues("skipped").Inc()
		report.Sent++
		return n.MarkEmailSent(h.clock())
	}

	subject, body := n.Email()
	sendCtx, cancel := context.WithTimeout(ctx, h.settings.SendTimeout)
	err = h.mailer.Send(sendCtx, ports.EmailMessage{To: recipient.Email(), Subject: subject, Body: body})
	cancel()

	if err == nil {
		metrics.DeliveryAttempts.WithLabelValues("sent").Inc()
		h.registry.MarkSent(ctx, id, h.settings.RegistryTTL)
		report.Sent++
		return n.MarkEmailSent(h.clock())
	}

	// Shutting down is not the email's fault.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	retryable, kind := classifyDeliveryError(err)
	outcome := "permanent"
	if retryable {
		outcome = "transient"
	}
	metrics.DeliveryAttempts.WithLabelValues(outcome).Inc()
	log.Info("notification email failed",
		zap.String("kind", kind),
		zap.Int("attempt", n.Attempts()+1),
		zap.Error(err),
	)

	return n.RecordFailure(err, retryable, h.clock(), h.policy)
}

func (h DeliverNotificationsCommandHandler) archive(
	ctx context.Context,
	n *notification.Notification,
	report *DeliveryReport,
) error {
	entry, err := n.ToHistory(h.clock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationHistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.NotificationRepository().Delete(ctx, n.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.NotificationsArchived.WithLabelValues(strconv.FormatBool(entry.Delivered)).Inc()
	report.Archived++
	return nil
}

func (r DeliveryReport) merge(other DeliveryReport) DeliveryReport {
	return DeliveryReport{
		Claimed:  r.Claimed + other.Claimed,
		Skipped:  r.Skipped + other.Skipped,
		Sent:     r.Sent + other.Sent,
		Retrying: r.Retrying + other.Retrying,
		Failed:   r.Failed + other.Failed,
		Archived: r.Archived + other.Archived,
	}
}

type noopSendRegistry struct{}

func (noopSendRegistry) WasSent(context.Context, string) bool { return false }

func (noopSendRegistry) MarkSent(context.Context, string, time.Duration) {}
