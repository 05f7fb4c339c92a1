package outboxrepo

import (
	"context"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// MaxAttempts is the number of failed publishes after which a row is parked:
	// it stays in the table with its last error but ListPending no longer returns it.
	MaxAttempts = 10

	// maxErrorLength bounds the failure reason kept per row, in bytes.
	maxErrorLength = 1024
)

// GormOutboxRepository implements ports.OutboxRepository using GORM. ListPending only
// holds its row locks when called inside a transaction.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListPending locks up to limit unpublished rows in insertion order, skipping rows
// another relay already holds and rows parked after MaxAttempts failures.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]event.Event, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL AND attempts < ?", MaxAttempts).
		Order("sequence").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, toDomain(dto))
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]any{"published_at": at.UTC()})
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	return r.update(ctx, id, map[string]any{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": truncate(reason, maxErrorLength),
	})
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func (r *GormOutboxRepository) update(ctx context.Context, id kernel.UUID, values map[string]any) error {
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).Where("id = ?", id.Bytes()).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("eventId", id.String())
	}
	return nil
}
