// Package outboxrepo stores domain events until the relay has published them.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO is one row of outbox_messages. A NULL PublishedAt means pending.
type MessageDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Sequence    int64             `gorm:"autoIncrement;uniqueIndex"`
	Name        string            `gorm:"type:varchar(64);not null"`
	RequestID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	OccurredAt  time.Time         `gorm:"not null"`
	Attributes  map[string]string `gorm:"type:jsonb;serializer:json"`
	PublishedAt *time.Time        `gorm:"index"`
	Attempts    int               `gorm:"not null;default:0"`
	LastError   string            `gorm:"type:text"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(e event.Event) MessageDTO {
	return MessageDTO{
		ID:         e.ID().Bytes(),
		Name:       string(e.Name()),
		RequestID:  e.RequestID().Bytes(),
		OccurredAt: e.OccurredAt(),
		Attributes: e.Attributes(),
	}
}

func toDomain(dto MessageDTO) event.Event {
	return event.Restore(
		kernel.UUIDFromGoogle(dto.ID),
		event.Name(dto.Name),
		kernel.UUIDFromGoogle(dto.RequestID),
		dto.OccurredAt,
		dto.Attributes,
	)
}
