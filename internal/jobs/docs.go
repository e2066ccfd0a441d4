// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. StalledOrderJob - Runs every minute to re-dispatch orders that were
// accepted or marked for retry but whose pipeline run never finished, for
// example after a process restart.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(stalledOrderJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The stalled-order job uses the cron expression "0 * * * * *", meaning it
// runs at the start of every minute. Recovery does not need to be faster than
// that; the run lock already prevents double processing of in-flight orders.
package jobs
