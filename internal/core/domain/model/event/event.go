// Package event defines the domain events raised by marketplace aggregates.
//
// Aggregates record events while they mutate and expose them through Events.
// The unit of work persists recorded events in the same transaction as the
// aggregate, and a relay hands them to the notification dispatcher later, so
// a delivery failure never rolls back the mutation that produced the event.
package event

import (
	"maps"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Name identifies the kind of event. Names double as message-bus subjects.
type Name string

const (
	RequestPosted    Name = "request.posted"
	BidSubmitted     Name = "bid.submitted"
	BidAccepted      Name = "bid.accepted"
	BidRejected      Name = "bid.rejected"
	JobStatusChanged Name = "job.status_changed"
	LocationPinged   Name = "job.location_pinged"
)

// Attribute keys carried by events.
const (
	AttrRequesterID          = "requesterId"
	AttrTransporterID        = "transporterId"
	AttrRevokedTransporterID = "revokedTransporterId"
	AttrBidID                = "bidId"
	AttrAmount               = "amount"
	AttrCurrency             = "currency"
	AttrStatus               = "status"
	AttrPreviousStatus       = "previousStatus"
	AttrLatitude             = "latitude"
	AttrLongitude            = "longitude"
	AttrGoodsType            = "goodsType"
	AttrScheduledAt          = "scheduledAt"
	AttrReason               = "reason"
)

// Event is an immutable fact about a transport request.
type Event struct {
	id         kernel.UUID
	name       Name
	requestID  kernel.UUID
	occurredAt time.Time
	attributes map[string]string
}

// New creates an event with a fresh id.
func New(name Name, requestID kernel.UUID, occurredAt time.Time, attributes map[string]string) Event {
	return Restore(kernel.NewUUID(), name, requestID, occurredAt, attributes)
}

// Restore rebuilds a persisted event.
func Restore(id kernel.UUID, name Name, requestID kernel.UUID, occurredAt time.Time, attributes map[string]string) Event {
	return Event{
		id:         id,
		name:       name,
		requestID:  requestID,
		occurredAt: occurredAt.UTC(),
		attributes: maps.Clone(attributes),
	}
}

func (e Event) ID() kernel.UUID        { return e.id }
func (e Event) Name() Name             { return e.name }
func (e Event) RequestID() kernel.UUID { return e.requestID }
func (e Event) OccurredAt() time.Time  { return e.occurredAt }

// Attribute returns the value stored under key, or "".
func (e Event) Attribute(key string) string {
	return e.attributes[key]
}

// Attributes returns a copy of every attribute.
func (e Event) Attributes() map[string]string {
	out := maps.Clone(e.attributes)
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// Recorder collects events raised by an aggregate until they are drained.
// Embed it by value; the zero value is ready to use.
type Recorder struct {
	events []Event
}

// Record appends e.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Events returns the recorded events in the order they were raised.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ClearEvents forgets every recorded event.
func (r *Recorder) ClearEvents() {
	r.events = nil
}
