// Package errs provides the typed errors shared by the marketplace core.
//
// Every type pairs with a sentinel so callers can branch with errors.Is
// while still reading details through errors.As:
//   - ObjectNotFoundError (ErrObjectNotFound): a referenced order, user or
//     notification does not exist
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError:
//     input validation failures
//   - InvalidTransitionError (ErrInvalidTransition): a state machine rejected
//     a status change, including changes lost to a concurrent writer
//   - ForbiddenError (ErrForbidden): the actor has no rights over the entity
//   - StoreUnavailableError (ErrStoreUnavailable): the database is unreachable
//   - DeliveryTransientError (ErrDeliveryTransient): a retryable email failure
//
// StoreUnavailableError and DeliveryTransientError also expose their cause to
// errors.Is, so a timeout stays recognisable as context.DeadlineExceeded.
package errs
