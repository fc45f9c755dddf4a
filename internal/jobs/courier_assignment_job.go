package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dzdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierAssignmentJob periodically matches the oldest pending order with the
// closest dispatchable courier. It backs up the accept endpoint: orders no
// courier picked up voluntarily still get assigned.
type CourierAssignmentJob struct {
	handler  commands.AssignCourierCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewCourierAssignmentJob creates the assignment job with the given cron
// schedule (six-field spec, seconds included).
func NewCourierAssignmentJob(handler commands.AssignCourierCommandHandler, schedule string, logger *slog.Logger) *CourierAssignmentJob {
	return &CourierAssignmentJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "courier_assignment_job"),
	}
}

// Start schedules the job.
func (j *CourierAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAssignCourierCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue and an empty courier pool are normal states,
			// not failures.
			if !errors.Is(err, commands.ErrNoOrderFound) && !errors.Is(err, commands.ErrNoFreeCouriersFound) {
				j.logger.ErrorContext(ctx, "courier assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "courier assignment job started", "schedule", j.schedule)
	return nil
}

// Stop stops the courier assignment job.
func (j *CourierAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "courier assignment job stopped")
}
