// Package natsnotify publishes domain events to NATS.
//
// Every event goes to "marketplace.<event name>". Posted requests are published to
// "marketplace.request.posted.<cell>" instead, where cell is the 5-character geohash
// of the pickup, so transporters subscribe to the areas they serve:
//
//	nc.Subscribe("marketplace.request.posted.wh0r3", handler)
//	nc.Subscribe("marketplace.request.posted.>", handler)
package natsnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/ports"

	"github.com/mmcloughlin/geohash"
	"github.com/nats-io/nats.go"
)

const (
	SubjectPrefix = "marketplace"
	// CellPrecision is the geohash length of posted-request subjects, roughly 5 km cells.
	CellPrecision = 5
)

var _ ports.Notifier = (*NatsNotifier)(nil)

// Message is the JSON body of every published event.
type Message struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	RequestID  string            `json:"requestId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Cell       string            `json:"cell,omitempty"`
	Attributes map[string]string `json:"attributes"`
}

type NatsNotifier struct {
	conn *nats.Conn
}

func NewNatsNotifier(conn *nats.Conn) *NatsNotifier {
	return &NatsNotifier{conn: conn}
}

// Publish hands e to the connection. Delivery is at-most-once per call; the outbox
// relay retries events whose publish returned an error.
func (n *NatsNotifier) Publish(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := Message{
		ID:         e.ID().String(),
		Name:       string(e.Name()),
		RequestID:  e.RequestID().String(),
		OccurredAt: e.OccurredAt(),
		Attributes: e.Attributes(),
	}
	subject := Subject(e.Name())
	if e.Name() == event.RequestPosted {
		if cell, ok := pickupCell(e); ok {
			msg.Cell = cell
			subject += "." + cell
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", e.Name(), err)
	}
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Subject returns the base subject of an event name.
func Subject(name event.Name) string {
	return SubjectPrefix + "." + string(name)
}

func pickupCell(e event.Event) (string, bool) {
	lat, latErr := strconv.ParseFloat(e.Attribute(event.AttrLatitude), 64)
	lng, lngErr := strconv.ParseFloat(e.Attribute(event.AttrLongitude), 64)
	if latErr != nil || lngErr != nil {
		return "", false
	}
	return geohash.EncodeWithPrecision(lat, lng, CellPrecision), true
}
