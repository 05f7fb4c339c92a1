package transport_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []transport.Status{
	transport.Open,
	transport.Bidding,
	transport.Confirmed,
	transport.InTransit,
	transport.Completed,
	transport.Cancelled,
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []transport.Status{transport.Unknown, transport.Status(-1), transport.Status(7)} {
		t.Run(fmt.Sprintf("reject %d", int(s)), func(t *testing.T) {
			err := s.Validate()

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "is not a valid status")
		})
	}
}

func TestStatus_ParseRoundTrip(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := transport.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := transport.ParseStatus("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(transport.Status) (transport.Status, error)

	tests := []struct {
		name    string
		do      transition
		allowed map[transport.Status]transport.Status
		wantErr error
	}{
		{
			name:    "receive bid",
			do:      transport.Status.ReceiveBid,
			allowed: map[transport.Status]transport.Status{transport.Open: transport.Bidding, transport.Bidding: transport.Bidding},
			wantErr: transport.ErrRequestNotAcceptingBids,
		},
		{
			name:    "confirm",
			do:      transport.Status.Confirm,
			allowed: map[transport.Status]transport.Status{transport.Open: transport.Confirmed, transport.Bidding: transport.Confirmed},
			wantErr: transport.ErrRequestNotAcceptingBids,
		},
		{
			name:    "start transit",
			do:      transport.Status.StartTransit,
			allowed: map[transport.Status]transport.Status{transport.Confirmed: transport.InTransit},
			wantErr: errs.ErrInvalidTransition,
		},
		{
			name:    "complete",
			do:      transport.Status.Complete,
			allowed: map[transport.Status]transport.Status{transport.InTransit: transport.Completed},
			wantErr: errs.ErrInvalidTransition,
		},
		{
			name: "cancel",
			do:   transport.Status.Cancel,
			allowed: map[transport.Status]transport.Status{
				transport.Open:      transport.Cancelled,
				transport.Bidding:   transport.Cancelled,
				transport.Confirmed: transport.Cancelled,
			},
			wantErr: errs.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		for _, from := range allStatuses {
			t.Run(tt.name+" from "+from.String(), func(t *testing.T) {
				got, err := tt.do(from)

				if want, ok := tt.allowed[from]; ok {
					require.NoError(t, err)
					assert.Equal(t, want, got)
					return
				}
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, transport.Unknown, got)
			})
		}
	}
}

func TestStatus_Predicates(t *testing.T) {
	for _, s := range allStatuses {
		assert.Equal(t, s == transport.Open || s == transport.Bidding, s.IsAcceptingBids(), s.String())
		assert.Equal(t, s == transport.Confirmed || s == transport.InTransit || s == transport.Completed, s.HasWinner(), s.String())
		assert.Equal(t, s == transport.Completed || s == transport.Cancelled, s.IsTerminal(), s.String())
	}
}

func TestPaymentMethod(t *testing.T) {
	m, err := transport.ParsePaymentMethod(" CASH ")
	require.NoError(t, err)
	assert.Equal(t, transport.Cash, m)

	m, err = transport.ParsePaymentMethod("online")
	require.NoError(t, err)
	assert.Equal(t, "Online", m.String())

	_, err = transport.ParsePaymentMethod("cheque")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, transport.PaymentUnknown.Validate(), errs.ErrValueIsInvalid)
}
