// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dzdelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PricingRepoFactory provides access to the pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// DemandRepoFactory provides access to the demand repository within a transaction.
	DemandRepoFactory interface {
		DemandRepository() ports.DemandRepository
	}

	// OrderUoW manages transactions for order-and-courier operations, the
	// shape every status mutation needs: the order moves and the courier's
	// reservation moves with it.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DemandUoW manages transactions for demand sampling.
	DemandUoW interface {
		TxManager
		DemandRepoFactory
	}

	// DemandUoWFactory creates new demand unit of work instances.
	DemandUoWFactory interface {
		Create() DemandUoW
	}

	// UoW manages transactions across all aggregates. Used by order
	// creation, which prices, numbers, and stores the order in one
	// transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		PricingRepoFactory
		DemandRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
