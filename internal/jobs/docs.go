// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the marketplace.
//
// # Available Jobs
//
// 1. CourierAssignmentJob - Assigns the oldest pending order to the closest dispatchable courier
// 2. DemandSamplingJob - Records demand snapshots feeding the trend and prediction queries
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers and schedules
//	jobManager := jobs.NewJobManager(assignHandler, sampleHandler, "*/30 * * * * *", "0 */5 * * * *", logger)
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
// Schedules are six-field cron expressions (seconds included) supplied
// through configuration. Assignment defaults to every 30 seconds, sampling
// to every 5 minutes.
//
// # Error Handling
//
// - Assignment job ignores expected business errors (no orders, no couriers)
// - Sampling job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
