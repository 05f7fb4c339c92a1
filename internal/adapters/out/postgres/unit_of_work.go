// Package postgres provides the GORM-based Unit of Work of the marketplace.
// The unit of work keeps one database transaction per business operation, hands out
// repositories bound to it and tracks every aggregate written through them.
//
// On Commit the domain events recorded by the tracked aggregates are appended to the
// outbox in the same transaction, so an event exists exactly when its change does.
// The outbox relay publishes them later.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.RequestRepository().Update(ctx, request); err != nil {
//	    return err
//	}
//	if err := uow.AssignmentRepository().DeleteByRequest(ctx, request.ID()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance is used by a single goroutine
//   - Concurrent writers of one request are serialised by the request version,
//     not by database locks; the loser gets errs.ErrConflict
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/assignmentrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/adapters/out/postgres/transporterrepo"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	Events() []event.Event
	ClearEvents()
}

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state and tracking list.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]

	return nil
}

// Commit appends the recorded events of every tracked aggregate to the outbox and
// commits. Events are cleared from the aggregates only once the commit succeeded.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active. A failed commit
// leaves the unit of work closed and the events still recorded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()
	var pending []event.Event
	for _, s := range sources {
		pending = append(pending, s.Events()...)
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, pending...); err != nil {
		_ = uow.tx.Rollback().Error
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, s := range sources {
		s.ClearEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// RequestRepository returns a repository bound to the active transaction, or to the
// plain connection when none is active.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TransporterRepository() ports.TransporterRepository {
	return transporterrepo.NewGormTransporterRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work. Repositories
// call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// eventSources lists each tracked event-recording aggregate once, in tracking order.
func (uow *GormUnitOfWork) eventSources() []eventSource {
	seen := make(map[kernel.UUID]struct{}, len(uow.trackedAggregates))
	sources := make([]eventSource, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		s, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		sources = append(sources, s)
	}
	return sources
}
