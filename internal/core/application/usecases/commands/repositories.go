// Package commands contains the write operations of the marketplace.
// Every command is validated at construction; its handler opens a unit of work,
// loads the aggregates, applies the domain operation and commits.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	TransporterRepoFactory interface {
		TransporterRepository() ports.TransporterRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// RequestUoW is used by operations that touch only the Request aggregate.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// FleetUoW is used by transporter profile and fleet operations.
	FleetUoW interface {
		TxManager
		TransporterRepoFactory
		AssignmentRepoFactory
	}

	FleetUoWFactory interface {
		Create() FleetUoW
	}

	// UoW spans requests, transporter profiles and job assignments.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   request, err := uow.RequestRepository().Get(ctx, id)
	//   // ... mutate, Update
	//
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		TransporterRepoFactory
		AssignmentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
