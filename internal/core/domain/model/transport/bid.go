package transport

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxBidNoteLength is the longest note, in characters, a transporter may attach to a bid.
const MaxBidNoteLength = 500

var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")

// Bid is one transporter's priced offer against a request. Bids are entities owned
// by their Request: status changes happen only through Request methods.
type Bid struct {
	id            kernel.UUID
	requestID     kernel.UUID
	transporterID kernel.UUID
	amount        kernel.Money
	note          string
	submittedAt   time.Time
	status        BidStatus
	guard         guard.ConstructorGuard
}

// NewBid creates a Pending bid. The amount must be greater than zero.
func NewBid(
	requestID kernel.UUID,
	transporterID kernel.UUID,
	amount kernel.Money,
	note string,
	submittedAt time.Time,
) (*Bid, error) {
	return RestoreBid(kernel.NewUUID(), requestID, transporterID, amount, note, submittedAt, BidPending)
}

// RestoreBid rebuilds a persisted bid.
func RestoreBid(
	id kernel.UUID,
	requestID kernel.UUID,
	transporterID kernel.UUID,
	amount kernel.Money,
	note string,
	submittedAt time.Time,
	status BidStatus,
) (*Bid, error) {
	bid := &Bid{
		submittedAt: submittedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bid.setID(id),
		bid.setRequestID(requestID),
		bid.setTransporterID(transporterID),
		bid.setAmount(amount),
		bid.setNote(note),
		bid.setStatus(status),
	); err != nil {
		return nil, err
	}

	return bid, nil
}

func (b *Bid) Validate() error {
	if b == nil {
		return ErrBidIsNotConstructed
	}
	return b.guard.Validate(ErrBidIsNotConstructed)
}

func (b *Bid) ID() kernel.UUID            { return b.id }
func (b *Bid) RequestID() kernel.UUID     { return b.requestID }
func (b *Bid) TransporterID() kernel.UUID { return b.transporterID }
func (b *Bid) Amount() kernel.Money       { return b.amount }
func (b *Bid) Note() string               { return b.note }
func (b *Bid) SubmittedAt() time.Time     { return b.submittedAt }
func (b *Bid) Status() BidStatus          { return b.status }

func (b *Bid) IsPending() bool {
	return b.status == BidPending
}

func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("bidId", err)
	}
	b.id = id
	return nil
}

func (b *Bid) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requestId", err)
	}
	b.requestID = id
	return nil
}

func (b *Bid) setTransporterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("transporterId", err)
	}
	b.transporterID = id
	return nil
}

func (b *Bid) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount", errors.New("must be greater than zero"))
	}
	b.amount = amount
	return nil
}

func (b *Bid) setNote(note string) error {
	if n := utf8.RuneCountInString(note); n > MaxBidNoteLength {
		return errs.NewValueIsOutOfRangeError("note", fmt.Sprintf("%d characters", n), 0, MaxBidNoteLength)
	}
	b.note = note
	return nil
}

func (b *Bid) setStatus(status BidStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}
