package queries_test

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/core/domain/model/transporter"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestReader struct{ mock.Mock }

func (m *MockRequestReader) Get(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Request), args.Error(1)
}

func (m *MockRequestReader) ListAcceptingBidsWithin(
	ctx context.Context,
	box kernel.BoundingBox,
) ([]*transport.Request, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.Request), args.Error(1)
}

func (m *MockRequestReader) ListCompletedByTransporter(
	ctx context.Context,
	transporterID kernel.UUID,
) ([]*transport.Request, error) {
	args := m.Called(ctx, transporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.Request), args.Error(1)
}

type MockTransporterReader struct{ mock.Mock }

func (m *MockTransporterReader) GetByUserID(ctx context.Context, userID kernel.UUID) (*transporter.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transporter.Profile), args.Error(1)
}

func (m *MockTransporterReader) ListWithin(ctx context.Context, box kernel.BoundingBox) ([]*transporter.Profile, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transporter.Profile), args.Error(1)
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
