package queries

import (
	"errors"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

var ErrPredictDemandQueryIsNotConstructed = errors.New(
	"PredictDemandQuery must be created via NewPredictDemandQuery constructor",
)

// PredictDemandQuery estimates the demand ratio expected at a future moment
// from samples taken in the same hour and weekday slot over the past month.
type PredictDemandQuery struct {
	guard guard.ConstructorGuard
	at    time.Time
}

// NewPredictDemandQuery creates a prediction query for the given moment.
func NewPredictDemandQuery(at time.Time) (PredictDemandQuery, error) {
	if at.IsZero() {
		return PredictDemandQuery{}, errs.NewValueIsRequiredError("at")
	}
	return PredictDemandQuery{guard: guard.NewConstructorGuard(), at: at}, nil
}

// At returns the moment the prediction is for.
func (q PredictDemandQuery) At() time.Time {
	return q.at
}

// Validate ensures the query was created through the constructor.
func (q PredictDemandQuery) Validate() error {
	return q.guard.Validate(ErrPredictDemandQueryIsNotConstructed)
}

// PredictDemandQueryResponse carries the estimate. Samples is zero when no
// history covers the slot, in which case the ratio is the neutral default.
type PredictDemandQueryResponse struct {
	At             time.Time
	PredictedRatio float64
	Level          demand.Level
	Samples        int
}
