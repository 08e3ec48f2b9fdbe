// Package notification models per-recipient notifications and their archive.
//
// A Notification is created pending, moves to sent or failed exactly once in
// the delivery pipeline, and is then archived as a HistoryEntry. Read state is
// independent of delivery state and only the recipient can change it.
package notification
