// Package requestrepo persists transport requests and their bids.
package requestrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgcommon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestDTO is one row of transport_requests. Version backs optimistic concurrency.
type RequestDTO struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey"`
	RequesterID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	Pickup        pgcommon.LocationColumns `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop          pgcommon.LocationColumns `gorm:"embedded;embeddedPrefix:drop_"`
	ScheduledAt   time.Time                `gorm:"not null"`
	GoodsType     string                   `gorm:"type:varchar(128);not null"`
	WeightKg      float64                  `gorm:"type:double precision;not null"`
	PaymentMethod int                      `gorm:"type:smallint;not null"`
	CashReceived  bool                     `gorm:"not null;default:false"`
	Status        int                      `gorm:"type:smallint;not null;index"`
	WinnerBidID   *uuid.UUID               `gorm:"type:uuid"`
	Rating        *int                     `gorm:"type:smallint"`
	CreatedAt     time.Time                `gorm:"not null"`
	Version       int64                    `gorm:"not null;default:0"`
	Bids          []BidDTO                 `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (RequestDTO) TableName() string {
	return "transport_requests"
}

type BidDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransporterID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency      string          `gorm:"type:char(3);not null"`
	Note          string          `gorm:"type:text"`
	SubmittedAt   time.Time       `gorm:"not null"`
	Status        int             `gorm:"type:smallint;not null;index"`
}

func (BidDTO) TableName() string {
	return "bids"
}

func fromDomain(r *transport.Request) RequestDTO {
	requestID := r.ID().Bytes()

	var winner *uuid.UUID
	if id := r.WinnerBidID(); id != nil {
		raw := id.Bytes()
		winner = &raw
	}

	bids := make([]BidDTO, 0, len(r.Bids()))
	for _, b := range r.Bids() {
		bids = append(bids, bidFromDomain(requestID, b))
	}

	return RequestDTO{
		ID:            requestID,
		RequesterID:   r.RequesterID().Bytes(),
		Pickup:        pgcommon.FromLocation(r.Pickup()),
		Drop:          pgcommon.FromLocation(r.Drop()),
		ScheduledAt:   r.ScheduledAt(),
		GoodsType:     r.GoodsType(),
		WeightKg:      r.WeightKg(),
		PaymentMethod: int(r.PaymentMethod()),
		CashReceived:  r.CashReceived(),
		Status:        int(r.Status()),
		WinnerBidID:   winner,
		Rating:        r.Rating(),
		CreatedAt:     r.CreatedAt(),
		Version:       r.Version(),
		Bids:          bids,
	}
}

func bidFromDomain(requestID uuid.UUID, b *transport.Bid) BidDTO {
	return BidDTO{
		ID:            b.ID().Bytes(),
		RequestID:     requestID,
		TransporterID: b.TransporterID().Bytes(),
		Amount:        b.Amount().Amount(),
		Currency:      b.Amount().Currency(),
		Note:          b.Note(),
		SubmittedAt:   b.SubmittedAt(),
		Status:        int(b.Status()),
	}
}

func toDomain(dto RequestDTO) (*transport.Request, error) {
	pickup, err := dto.Pickup.ToDomain()
	if err != nil {
		return nil, err
	}
	drop, err := dto.Drop.ToDomain()
	if err != nil {
		return nil, err
	}

	bids := make([]*transport.Bid, 0, len(dto.Bids))
	for _, b := range dto.Bids {
		bid, err := bidToDomain(b)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	var winner *kernel.UUID
	if dto.WinnerBidID != nil {
		id := kernel.UUIDFromGoogle(*dto.WinnerBidID)
		winner = &id
	}

	return transport.RestoreRequest(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.RequesterID),
		pickup,
		drop,
		transport.RequestDetails{
			ScheduledAt:   dto.ScheduledAt,
			GoodsType:     dto.GoodsType,
			WeightKg:      dto.WeightKg,
			PaymentMethod: transport.PaymentMethod(dto.PaymentMethod),
		},
		dto.CashReceived,
		transport.Status(dto.Status),
		winner,
		bids,
		dto.Rating,
		dto.CreatedAt,
		dto.Version,
	)
}

func bidToDomain(dto BidDTO) (*transport.Bid, error) {
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return transport.RestoreBid(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.RequestID),
		kernel.UUIDFromGoogle(dto.TransporterID),
		amount,
		dto.Note,
		dto.SubmittedAt,
		transport.BidStatus(dto.Status),
	)
}
