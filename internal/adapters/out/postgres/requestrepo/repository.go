package requestrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/adapters/out/postgres/pgcommon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the request together with its bids.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *transport.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgcommon.IsUniqueViolation(err) {
			return fmt.Errorf("%w: request %s already exists", errs.ErrConflict, aggregate.ID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the request only if its stored version still matches, upserts every bid
// and then advances the aggregate's version.
//
// Example:
//
//	request, _ := repo.Get(ctx, id)
//	_ = request.AcceptBid(bidID, callerID, time.Now())
//	if err := repo.Update(ctx, request); errors.Is(err, errs.ErrConflict) {
//		// another writer committed first; reload and retry
//	}
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *transport.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.CheckInvariants(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":        dto.Status,
			"cash_received": dto.CashReceived,
			"winner_bid_id": dto.WinnerBidID,
			"rating":        dto.Rating,
			"version":       dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if len(dto.Bids) > 0 {
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "currency", "note", "status"}),
		}
		if err := db.Clauses(upsert).Create(&dto.Bids).Error; err != nil {
			return err
		}
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("requestId", id.String())
	}
	return fmt.Errorf("%w: request %s was modified concurrently", errs.ErrConflict, id)
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	return r.get(ctx, id, r.withBids(ctx))
}

// GetForUpdate takes a FOR UPDATE lock on the request row. An update of the same request
// by another transaction waits for this one to end, and this read waits for theirs.
func (r *GormRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Request, error) {
	return r.get(ctx, id, r.withBids(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormRequestRepository) get(ctx context.Context, id kernel.UUID, query *gorm.DB) (*transport.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requestId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRequestRepository) GetByBidID(ctx context.Context, bidID kernel.UUID) (*transport.Request, error) {
	if err := bidID.Validate(); err != nil {
		return nil, err
	}

	var bid BidDTO
	if err := r.db.WithContext(ctx).Select("request_id").First(&bid, "id = ?", bidID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bidId", bidID.String())
		}
		return nil, err
	}

	return r.Get(ctx, kernel.UUIDFromGoogle(bid.RequestID))
}

// ListAcceptingBidsWithin returns Open and Bidding requests whose pickup lies in box.
func (r *GormRequestRepository) ListAcceptingBidsWithin(
	ctx context.Context,
	box kernel.BoundingBox,
) ([]*transport.Request, error) {
	var dtos []RequestDTO
	query := r.withBids(ctx).Where("status IN ?", []int{int(transport.Open), int(transport.Bidding)})
	if err := pgcommon.WithinBox(query, "pickup_", box).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListCompletedByTransporter returns Completed requests whose winning bid belongs to transporterID.
func (r *GormRequestRepository) ListCompletedByTransporter(
	ctx context.Context,
	transporterID kernel.UUID,
) ([]*transport.Request, error) {
	var dtos []RequestDTO
	if err := r.withBids(ctx).
		Select("transport_requests.*").
		Joins("JOIN bids ON bids.id = transport_requests.winner_bid_id").
		Where("transport_requests.status = ? AND bids.transporter_id = ?", int(transport.Completed), transporterID.Bytes()).
		Order("transport_requests.scheduled_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormRequestRepository) withBids(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Bids", func(db *gorm.DB) *gorm.DB {
		return db.Order("submitted_at, id")
	})
}

func toDomainList(dtos []RequestDTO) ([]*transport.Request, error) {
	requests := make([]*transport.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

