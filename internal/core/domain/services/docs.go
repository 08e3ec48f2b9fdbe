// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - NotificationDispatcher: maps a committed domain event to the
//     notifications each interested user must receive
package services
