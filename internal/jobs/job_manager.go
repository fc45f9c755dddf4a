package jobs

import (
	"fmt"
	"log/slog"

	"dzdelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	courierAssignmentJob *CourierAssignmentJob
	demandSamplingJob    *DemandSamplingJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers and cron schedules as dependencies.
func NewJobManager(
	assignCourierHandler commands.AssignCourierCommandHandler,
	sampleDemandHandler commands.SampleDemandCommandHandler,
	assignmentSchedule string,
	samplingSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		courierAssignmentJob: NewCourierAssignmentJob(assignCourierHandler, assignmentSchedule, logger),
		demandSamplingJob:    NewDemandSamplingJob(sampleDemandHandler, samplingSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.courierAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier assignment job: %w", err)
	}

	if err := jm.demandSamplingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.courierAssignmentJob.Stop()
		return fmt.Errorf("failed to start demand sampling job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.demandSamplingJob.Stop()
	jm.courierAssignmentJob.Stop()
}
