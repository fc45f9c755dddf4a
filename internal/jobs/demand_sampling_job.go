package jobs

import (
	"context"
	"log/slog"

	"dzdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DemandSamplingJob records demand snapshots on a fixed schedule so the trend
// and prediction queries have a history to aggregate even when nobody asks
// for the current demand.
type DemandSamplingJob struct {
	handler  commands.SampleDemandCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewDemandSamplingJob creates the sampling job with the given cron schedule
// (six-field spec, seconds included).
func NewDemandSamplingJob(handler commands.SampleDemandCommandHandler, schedule string, logger *slog.Logger) *DemandSamplingJob {
	return &DemandSamplingJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "demand_sampling_job"),
	}
}

// Start schedules the job.
func (j *DemandSamplingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSampleDemandCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "demand sampling job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "demand sampling job started", "schedule", j.schedule)
	return nil
}

// Stop stops the demand sampling job.
func (j *DemandSamplingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "demand sampling job stopped")
}
