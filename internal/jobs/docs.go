// Package jobs runs the background work of the notification pipeline on
// github.com/robfig/cron/v3 schedules (six fields, seconds first).
//
// # Available Jobs
//
//  1. NotificationDeliveryJob - claims due notifications, emails them and
//     archives the ones that reached a final delivery state
//  2. ArchiveRecoveryJob - deletes live notifications that already have a
//     history entry
//
// # Usage
//
//	delivery := jobs.NewNotificationDeliveryJob(deliverHandler, "*/5 * * * * *", logger)
//	recovery := jobs.NewArchiveRecoveryJob(recoverHandler, "0 */10 * * * *", logger)
//	manager := jobs.NewJobManager(delivery, recovery)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// Overlapping runs of the same job are skipped, and a panic inside a run is
// logged instead of taking the process down.
package jobs
