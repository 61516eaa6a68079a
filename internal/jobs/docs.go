// Package jobs provides scheduled background tasks for the delivery-sheet
// service, implemented with github.com/robfig/cron/v3.
//
// The only job today is ManifestExpiryJob, which closes sheets left in
// delivery past their operating day and returns their unresolved shipments to
// the deliverable pool. It runs on a configurable cron schedule evaluated in
// the operation's timezone, and once at startup to cover downtime.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(expireHandler, "15 0 * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
