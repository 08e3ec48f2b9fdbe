// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root linking a service, its client and its freelancer
//   - Status: the state table with the parties allowed to trigger each edge
//   - Delivery: append-only work submissions against an order
//
// Key business rules:
//   - Orders start Pending; Completed and Cancelled are terminal
//   - An edge missing from the state table always fails, including x -> x
//   - Only participants (or admins) may change an order, and only the side named
//     for an edge may trigger it
package order
