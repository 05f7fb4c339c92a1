package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. On Commit, events recorded on the
// aggregates written through its repositories are appended to the outbox in the
// same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	RequestRepository() RequestRepository
	TransporterRepository() TransporterRepository
	AssignmentRepository() AssignmentRepository
	OutboxRepository() OutboxRepository
}
