// Package redistrack keeps the last known position of every job in transit in Redis.
package redistrack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a position survives without a newer ping.
	DefaultTTL = 24 * time.Hour

	keyPattern = "marketplace:position:%s"

	fieldTransporterID = "transporter_id"
	fieldLatitude      = "lat"
	fieldLongitude     = "lng"
	fieldRecordedAt    = "recorded_at"
)

var _ ports.PositionTracker = (*RedisPositionTracker)(nil)

// RedisPositionTracker stores one hash per request and refreshes its TTL on every save.
type RedisPositionTracker struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisPositionTracker returns a tracker; a non-positive ttl selects DefaultTTL.
func NewRedisPositionTracker(client redis.Cmdable, ttl time.Duration) *RedisPositionTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPositionTracker{client: client, ttl: ttl}
}

// Save overwrites the request's position. Pings older than the stored one are ignored.
func (t *RedisPositionTracker) Save(ctx context.Context, position ports.Position) error {
	key := keyFor(position.RequestID)

	stored, err := t.client.HGet(ctx, key, fieldRecordedAt).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return fmt.Errorf("read stored position: %w", err)
	default:
		if nanos, perr := strconv.ParseInt(stored, 10, 64); perr == nil && position.RecordedAt.UnixNano() < nanos {
			return nil
		}
	}

	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			fieldTransporterID: position.TransporterID.String(),
			fieldLatitude:      strconv.FormatFloat(position.Point.Latitude(), 'f', -1, 64),
			fieldLongitude:     strconv.FormatFloat(position.Point.Longitude(), 'f', -1, 64),
			fieldRecordedAt:    strconv.FormatInt(position.RecordedAt.UnixNano(), 10),
		})
		pipe.Expire(ctx, key, t.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store position: %w", err)
	}
	return nil
}

// Last returns the stored position, or errs.ErrObjectNotFound once it expired or was never saved.
func (t *RedisPositionTracker) Last(ctx context.Context, requestID kernel.UUID) (ports.Position, error) {
	values, err := t.client.HGetAll(ctx, keyFor(requestID)).Result()
	if err != nil {
		return ports.Position{}, fmt.Errorf("read position: %w", err)
	}
	if len(values) == 0 {
		return ports.Position{}, errs.NewObjectNotFoundError("position", requestID)
	}

	return decode(requestID, values)
}

func decode(requestID kernel.UUID, values map[string]string) (ports.Position, error) {
	transporterID, err := kernel.UUIDFromString(values[fieldTransporterID])
	if err != nil {
		return ports.Position{}, fmt.Errorf("decode transporter id: %w", err)
	}
	lat, latErr := strconv.ParseFloat(values[fieldLatitude], 64)
	lng, lngErr := strconv.ParseFloat(values[fieldLongitude], 64)
	nanos, tsErr := strconv.ParseInt(values[fieldRecordedAt], 10, 64)
	if err := errors.Join(latErr, lngErr, tsErr); err != nil {
		return ports.Position{}, fmt.Errorf("decode position: %w", err)
	}
	point, err := kernel.NewPoint(lat, lng)
	if err != nil {
		return ports.Position{}, fmt.Errorf("decode position: %w", err)
	}

	return ports.Position{
		RequestID:     requestID,
		TransporterID: transporterID,
		Point:         point,
		RecordedAt:    time.Unix(0, nanos).UTC(),
	}, nil
}

func keyFor(requestID kernel.UUID) string {
	return fmt.Sprintf(keyPattern, requestID.String())
}
