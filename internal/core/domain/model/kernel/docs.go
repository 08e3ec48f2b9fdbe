// Package kernel holds the value objects shared by every marketplace aggregate.
//
// The package includes:
//   - UUID: identifier for users, orders, notifications and the rest
//   - Money: an amount in minor units with an ISO 4217 currency code
//   - Actor: the authenticated user a command runs on behalf of
//   - Clock: the time source injected into handlers and jobs
//
// All values are immutable and their zero values are invalid; use the
// constructors.
package kernel
