package commands

import (
	"context"
	"errors"

	"marketplace/internal/pkg/guard"
	"marketplace/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ErrRecoverArchivesCommandIsNotConstructed is returned when the command was built as a literal.
var ErrRecoverArchivesCommandIsNotConstructed = errors.New(
	"RecoverArchivesCommand must be created via NewRecoverArchivesCommand constructor",
)

// RecoverArchivesCommand triggers the sweep that removes live notifications
// already present in history, and notifications or history entries left
// behind for users that were deleted.
type RecoverArchivesCommand struct {
	guard guard.ConstructorGuard
}

// NewRecoverArchivesCommand creates a command for one recovery sweep.
func NewRecoverArchivesCommand() RecoverArchivesCommand {
	return RecoverArchivesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate reports whether the command came from its constructor.
func (c *RecoverArchivesCommand) Validate() error {
	return c.guard.Validate(ErrRecoverArchivesCommandIsNotConstructed)
}

// RecoverArchivesCommandHandler repairs notifications that reached history
// but whose live row survived. With the archive transaction in place this
// finds nothing; it exists for rows written by older code or by hand.
//
// It also drops rows of deleted users. A delivery worker that archives after
// a user's cascade committed inserts history for a recipient that is gone;
// nothing else would ever remove it.
//
// Example:
//
//	handler := NewRecoverArchivesCommandHandler(uowFactory, logger)
//
//	removed, err := handler.Handle(ctx, NewRecoverArchivesCommand())
//	if err != nil {
//	    return fmt.Errorf("recovery sweep: %w", err)
//	}
type RecoverArchivesCommandHandler struct {
	uowFactory NotificationUoWFactory
	logger     *zap.Logger
}

// NewRecoverArchivesCommandHandler creates a new RecoverArchivesCommandHandler.
func NewRecoverArchivesCommandHandler(uowFactory NotificationUoWFactory, logger *zap.Logger) RecoverArchivesCommandHandler {
	return RecoverArchivesCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle returns the number of rows removed across both tables.
func (h RecoverArchivesCommandHandler) Handle(ctx context.Context, command RecoverArchivesCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	notifications := uow.NotificationRepository()
	history := uow.NotificationHistoryRepository()

	sweeps := []struct {
		what string
		run  func(context.Context) (int64, error)
	}{
		{"archived notifications", notifications.DeleteArchived},
		{"notifications of deleted users", notifications.DeleteOrphaned},
		{"history of deleted users", history.DeleteOrphaned},
	}

	var total int64
	for _, sweep := range sweeps {
		removed, err := sweep.run(ctx)
		if err != nil {
			return total, err
		}
		if removed > 0 {
			metrics.ArchiveRepairs.Add(float64(removed))
			h.logger.Info("recovery sweep removed rows", zap.String("what", sweep.what), zap.Int64("count", removed))
		}
		total += removed
	}

	return total, nil
}
