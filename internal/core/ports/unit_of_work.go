package ports

import (
	"context"
	"errors"
)

// ErrPreconditionFailed is returned by guarded storage operations when the
// row no longer satisfies the expected precondition, meaning a concurrent
// writer won the race. Callers reload the aggregate and re-run the domain
// checks instead of retrying blindly.
var ErrPreconditionFailed = errors.New("storage precondition failed")

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Rolling back with no
	// open transaction is a no-op, so it can sit in a defer behind a
	// successful commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// PricingRepository returns a PricingRepository bound to the current transaction.
	PricingRepository() PricingRepository

	// DemandRepository returns a DemandRepository bound to the current transaction.
	DemandRepository() DemandRepository
}
