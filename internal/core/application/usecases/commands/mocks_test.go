package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *transport.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *transport.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Request), args.Error(1)
}

func (m *MockRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Request), args.Error(1)
}

func (m *MockRequestRepository) GetByBidID(ctx context.Context, bidID kernel.UUID) (*transport.Request, error) {
	args := m.Called(ctx, bidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Request), args.Error(1)
}

func (m *MockRequestRepository) ListAcceptingBidsWithin(
	ctx context.Context,
	box kernel.BoundingBox,
) ([]*transport.Request, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.Request), args.Error(1)
}

func (m *MockRequestRepository) ListCompletedByTransporter(
	ctx context.Context,
	transporterID kernel.UUID,
) ([]*transport.Request, error) {
	args := m.Called(ctx, transporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.Request), args.Error(1)
}

type MockTransporterRepository struct{ mock.Mock }

func (m *MockTransporterRepository) Add(ctx context.Context, p *transporter.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTransporterRepository) Update(ctx context.Context, p *transporter.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTransporterRepository) Get(ctx context.Context, id kernel.UUID) (*transporter.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transporter.Profile), args.Error(1)
}

func (m *MockTransporterRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*transporter.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transporter.Profile), args.Error(1)
}

func (m *MockTransporterRepository) ListWithin(ctx context.Context, box kernel.BoundingBox) ([]*transporter.Profile, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transporter.Profile), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.JobAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByRequest(
	ctx context.Context,
	requestID kernel.UUID,
) (*assignment.JobAssignment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.JobAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByRequest(ctx context.Context, requestID kernel.UUID) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) IsVehicleReferenced(ctx context.Context, vehicleID kernel.UUID) (bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) IsDriverReferenced(ctx context.Context, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, driverID)
	return args.Bool(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events ...event.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPending(ctx context.Context, limit int) ([]event.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

// MockUoW satisfies every narrowed unit of work of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) TransporterRepository() ports.TransporterRepository {
	args := m.Called()
	return args.Get(0).(ports.TransporterRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockFleetUoWFactory struct{ mock.Mock }

func (m *MockFleetUoWFactory) Create() commands.FleetUoW {
	args := m.Called()
	return args.Get(0).(commands.FleetUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockPositionTracker struct{ mock.Mock }

func (m *MockPositionTracker) Save(ctx context.Context, position ports.Position) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockPositionTracker) Last(ctx context.Context, requestID kernel.UUID) (ports.Position, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(ports.Position), args.Error(1)
}

// uowWith builds a unit of work whose repository accessors may be called any number of times.
func uowWith(
	requests *MockRequestRepository,
	transporters *MockTransporterRepository,
	assignments *MockAssignmentRepository,
	outbox *MockOutboxRepository,
) *MockUoW {
	uow := new(MockUoW)
	if requests != nil {
		uow.On("RequestRepository").Return(requests).Maybe()
	}
	if transporters != nil {
		uow.On("TransporterRepository").Return(transporters).Maybe()
	}
	if assignments != nil {
		uow.On("AssignmentRepository").Return(assignments).Maybe()
	}
	if outbox != nil {
		uow.On("OutboxRepository").Return(outbox).Maybe()
	}
	return uow
}
