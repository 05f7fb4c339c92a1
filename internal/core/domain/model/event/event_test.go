package event_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	requestID := kernel.NewUUID()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("BST", 6*3600))
	attrs := map[string]string{event.AttrBidID: "b-1"}

	e := event.New(event.BidAccepted, requestID, at, attrs)
	attrs[event.AttrBidID] = "mutated"

	assert.False(t, e.ID().IsZero())
	assert.Equal(t, event.BidAccepted, e.Name())
	assert.True(t, e.RequestID().IsEqual(requestID))
	assert.Equal(t, time.UTC, e.OccurredAt().Location())
	assert.True(t, e.OccurredAt().Equal(at))
	assert.Equal(t, "b-1", e.Attribute(event.AttrBidID))
	assert.Empty(t, e.Attribute(event.AttrAmount))

	copied := e.Attributes()
	copied[event.AttrBidID] = "changed"
	assert.Equal(t, "b-1", e.Attribute(event.AttrBidID))
}

func TestRecorder(t *testing.T) {
	var r event.Recorder
	assert.Empty(t, r.Events())

	first := event.New(event.RequestPosted, kernel.NewUUID(), time.Now(), nil)
	second := event.New(event.BidSubmitted, kernel.NewUUID(), time.Now(), nil)
	r.Record(first)
	r.Record(second)

	events := r.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, event.RequestPosted, events[0].Name())
	assert.Equal(t, event.BidSubmitted, events[1].Name())
	assert.NotNil(t, first.Attributes())

	r.ClearEvents()
	assert.Empty(t, r.Events())
	assert.Len(t, events, 2)
}
