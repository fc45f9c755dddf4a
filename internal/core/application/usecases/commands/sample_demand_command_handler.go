package commands

import (
	"context"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
)

// SampleDemandCommandHandler counts the current marketplace load and
// persists it as a demand snapshot.
type SampleDemandCommandHandler struct {
	uowFactory DemandUoWFactory
}

// NewSampleDemandCommandHandler creates a handler for demand sampling.
func NewSampleDemandCommandHandler(uowFactory DemandUoWFactory) SampleDemandCommandHandler {
	return SampleDemandCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the demand sampling command.
func (h SampleDemandCommandHandler) Handle(ctx context.Context, command SampleDemandCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	demandRepo := uow.DemandRepository()

	activeOrders, err := demandRepo.CountActiveOrders(ctx)
	if err != nil {
		return err
	}
	availableCouriers, err := demandRepo.CountAvailableCouriers(ctx)
	if err != nil {
		return err
	}

	snapshot := demand.NewSnapshot(time.Now(), activeOrders, availableCouriers)
	if err = demandRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
