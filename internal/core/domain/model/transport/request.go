package transport

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MaxGoodsTypeLength bounds the free-text goods description.
	MaxGoodsTypeLength = 100
	// MinRating and MaxRating bound a requester's score for a completed job.
	MinRating = 1
	MaxRating = 5
)

// Outcome errors of request operations. Callers match them with errors.Is.
var (
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")
	// ErrRequestNotAcceptingBids is returned when a bid is submitted, withdrawn or accepted
	// while the request is outside Open and Bidding.
	ErrRequestNotAcceptingBids = errors.New("request is not accepting bids")
	// ErrDuplicateBid is returned when the transporter already holds a non-withdrawn bid.
	ErrDuplicateBid = errors.New("transporter already has an active bid on this request")
	// ErrBidNotEligible is returned when the bid to accept is unknown to the request or not Pending.
	ErrBidNotEligible = errors.New("bid is not eligible for acceptance")
	// ErrAlreadyRated is returned by a second rating of the same job.
	ErrAlreadyRated = fmt.Errorf("%w: request was already rated", errs.ErrInvalidTransition)
	// ErrInvariantViolated is returned when a restored request breaks the winner/status rules.
	ErrInvariantViolated = errors.New("request invariant violated")
)

// RequestDetails are the requester-supplied attributes of a new request.
type RequestDetails struct {
	ScheduledAt   time.Time
	GoodsType     string
	WeightKg      float64
	PaymentMethod PaymentMethod
}

// Validate checks the details at time now and reports every violated field.
func (d RequestDetails) Validate(now time.Time) error {
	var r Request
	return errors.Join(d.ValidateShipment(now), r.setPaymentMethod(d.PaymentMethod))
}

// ValidateShipment is Validate without the payment method, for callers that parse
// the method themselves and already hold its error.
func (d RequestDetails) ValidateShipment(now time.Time) error {
	var r Request
	return errors.Join(
		r.setScheduledAt(d.ScheduledAt, now),
		r.setGoodsType(d.GoodsType),
		r.setWeightKg(d.WeightKg),
	)
}

// Request is the aggregate root of a shipment job. It owns its bids and enforces:
//   - the winning bid is set exactly when the status is Confirmed, InTransit or Completed
//   - at most one bid is Accepted, and it is the winning bid
//   - a transporter holds at most one non-withdrawn bid
//   - status changes follow the Status graph
//
// The repository compares and advances the version on every write, so two
// concurrent writers of the same request cannot both commit.
type Request struct {
	id            kernel.UUID
	requesterID   kernel.UUID
	scheduledAt   time.Time
	pickup        kernel.Location
	drop          kernel.Location
	goodsType     string
	weightKg      float64
	paymentMethod PaymentMethod
	cashReceived  bool
	status        Status
	winnerBidID   *kernel.UUID
	bids          []*Bid
	rating        *int
	createdAt     time.Time
	version       int64

	guard guard.ConstructorGuard
	event.Recorder
}

// NewRequest creates an Open request and records a RequestPosted event.
// Violations are returned as one *errs.ValidationError listing every field.
func NewRequest(
	requesterID kernel.UUID,
	pickup kernel.Location,
	drop kernel.Location,
	details RequestDetails,
	now time.Time,
) (*Request, error) {
	r := &Request{
		id:        kernel.NewUUID(),
		status:    Open,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errs.NewValidationError(
		r.setRequesterID(requesterID),
		r.setLocation(&r.pickup, "pickup", pickup),
		r.setLocation(&r.drop, "drop", drop),
		r.setScheduledAt(details.ScheduledAt, now),
		r.setGoodsType(details.GoodsType),
		r.setWeightKg(details.WeightKg),
		r.setPaymentMethod(details.PaymentMethod),
	); err != nil {
		return nil, err
	}

	r.Record(event.New(event.RequestPosted, r.id, now, map[string]string{
		event.AttrRequesterID: r.requesterID.String(),
		event.AttrLatitude:    formatCoordinate(pickup.Latitude()),
		event.AttrLongitude:   formatCoordinate(pickup.Longitude()),
		event.AttrGoodsType:   r.goodsType,
		event.AttrScheduledAt: r.scheduledAt.Format(time.RFC3339),
	}))

	return r, nil
}

// RestoreRequest rebuilds a persisted request with its bids. The scheduled time is not
// required to be in the future, but every structural invariant must hold.
func RestoreRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	pickup kernel.Location,
	drop kernel.Location,
	details RequestDetails,
	cashReceived bool,
	status Status,
	winnerBidID *kernel.UUID,
	bids []*Bid,
	rating *int,
	createdAt time.Time,
	version int64,
) (*Request, error) {
	r := &Request{
		id:           id,
		scheduledAt:  details.ScheduledAt.UTC(),
		cashReceived: cashReceived,
		createdAt:    createdAt.UTC(),
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		r.setRequesterID(requesterID),
		r.setLocation(&r.pickup, "pickup", pickup),
		r.setLocation(&r.drop, "drop", drop),
		r.setGoodsType(details.GoodsType),
		r.setWeightKg(details.WeightKg),
		r.setPaymentMethod(details.PaymentMethod),
		r.setStatus(status),
		r.setBids(bids),
		r.setRating(rating),
	); err != nil {
		return nil, err
	}
	if winnerBidID != nil {
		winner := *winnerBidID
		r.winnerBidID = &winner
	}

	if err := r.CheckInvariants(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) ID() kernel.UUID              { return r.id }
func (r *Request) RequesterID() kernel.UUID     { return r.requesterID }
func (r *Request) ScheduledAt() time.Time       { return r.scheduledAt }
func (r *Request) Pickup() kernel.Location      { return r.pickup }
func (r *Request) Drop() kernel.Location        { return r.drop }
func (r *Request) GoodsType() string            { return r.goodsType }
func (r *Request) WeightKg() float64            { return r.weightKg }
func (r *Request) PaymentMethod() PaymentMethod { return r.paymentMethod }
func (r *Request) CashReceived() bool           { return r.cashReceived }
func (r *Request) Status() Status               { return r.status }
func (r *Request) CreatedAt() time.Time         { return r.createdAt }
func (r *Request) Version() int64               { return r.version }

// WinnerBidID returns the accepted bid's id, or nil.
func (r *Request) WinnerBidID() *kernel.UUID {
	if r.winnerBidID == nil {
		return nil
	}
	id := *r.winnerBidID
	return &id
}

// Rating returns the requester's score, or nil when the job was not rated.
func (r *Request) Rating() *int {
	if r.rating == nil {
		return nil
	}
	v := *r.rating
	return &v
}

// Details returns the requester-supplied attributes.
func (r *Request) Details() RequestDetails {
	return RequestDetails{
		ScheduledAt:   r.scheduledAt,
		GoodsType:     r.goodsType,
		WeightKg:      r.weightKg,
		PaymentMethod: r.paymentMethod,
	}
}

// Bids returns the bids in submission order.
func (r *Request) Bids() []*Bid {
	return slices.Clone(r.bids)
}

// Bid looks up a bid of this request by id.
func (r *Request) Bid(bidID kernel.UUID) (*Bid, bool) {
	for _, b := range r.bids {
		if b.id.IsEqual(bidID) {
			return b, true
		}
	}
	return nil, false
}

// WinningBid returns the accepted bid, or nil.
func (r *Request) WinningBid() *Bid {
	if r.winnerBidID == nil {
		return nil
	}
	b, _ := r.Bid(*r.winnerBidID)
	return b
}

// WinnerTransporterID returns the transporter profile id of the winning bid.
func (r *Request) WinnerTransporterID() (kernel.UUID, bool) {
	if b := r.WinningBid(); b != nil {
		return b.transporterID, true
	}
	return kernel.UUID{}, false
}

// PendingBidCount counts bids still waiting for a decision.
func (r *Request) PendingBidCount() int {
	n := 0
	for _, b := range r.bids {
		if b.IsPending() {
			n++
		}
	}
	return n
}

// IsBidInert reports whether bid is Pending on a request that no longer accepts bids.
// Such a bid is never eligible for acceptance.
func (r *Request) IsBidInert(bid *Bid) bool {
	return bid != nil && bid.IsPending() && !r.status.IsAcceptingBids()
}

// IsRequester reports whether userID posted this request.
func (r *Request) IsRequester(userID kernel.UUID) bool {
	return !userID.IsZero() && r.requesterID.IsEqual(userID)
}

// SubmitBid appends a Pending bid from transporterID. The first bid moves the
// request from Open to Bidding.
func (r *Request) SubmitBid(transporterID kernel.UUID, amount kernel.Money, note string, now time.Time) (*Bid, error) {
	newStatus, err := r.status.ReceiveBid()
	if err != nil {
		return nil, err
	}
	if r.activeBidOf(transporterID) != nil {
		return nil, ErrDuplicateBid
	}

	bid, err := NewBid(r.id, transporterID, amount, note, now)
	if err != nil {
		return nil, errs.NewValidationError(err)
	}

	r.bids = append(r.bids, bid)
	r.status = newStatus
	r.Record(event.New(event.BidSubmitted, r.id, now, map[string]string{
		event.AttrBidID:         bid.id.String(),
		event.AttrTransporterID: transporterID.String(),
		event.AttrRequesterID:   r.requesterID.String(),
		event.AttrAmount:        amount.Amount().String(),
		event.AttrCurrency:      amount.Currency(),
	}))

	return bid, nil
}

// WithdrawBid marks the transporter's own Pending bid as Withdrawn.
// The request stays in Bidding even when no pending bid remains.
func (r *Request) WithdrawBid(bidID, transporterID kernel.UUID) error {
	bid, ok := r.Bid(bidID)
	if !ok {
		return errs.NewObjectNotFoundError("bidId", bidID)
	}
	if !bid.transporterID.IsEqual(transporterID) {
		return errs.ErrUnauthorized
	}
	if !r.status.IsAcceptingBids() {
		return fmt.Errorf("%w: request is %s", ErrRequestNotAcceptingBids, r.status)
	}

	newStatus, err := bid.status.withdraw()
	if err != nil {
		return err
	}
	bid.status = newStatus
	return nil
}

// AcceptBid makes bidID the winner, rejects every other Pending bid and confirms the request.
// Only the requester may accept.
func (r *Request) AcceptBid(bidID, callerID kernel.UUID, now time.Time) error {
	if !r.IsRequester(callerID) {
		return errs.ErrUnauthorized
	}
	newStatus, err := r.status.Confirm()
	if err != nil {
		return err
	}
	bid, ok := r.Bid(bidID)
	if !ok {
		return fmt.Errorf("%w: bid %s does not belong to request %s", ErrBidNotEligible, bidID, r.id)
	}
	winnerStatus, err := bid.status.accept()
	if err != nil {
		return err
	}

	bid.status = winnerStatus
	winner := bid.id
	r.winnerBidID = &winner
	r.status = newStatus

	r.Record(event.New(event.BidAccepted, r.id, now, map[string]string{
		event.AttrBidID:         bid.id.String(),
		event.AttrTransporterID: bid.transporterID.String(),
		event.AttrRequesterID:   r.requesterID.String(),
		event.AttrAmount:        bid.amount.Amount().String(),
		event.AttrCurrency:      bid.amount.Currency(),
	}))
	r.rejectPendingBids(now, "another bid was accepted")

	return nil
}

// StartTransit moves a Confirmed request to InTransit. Only the winning transporter may start it.
func (r *Request) StartTransit(transporterID kernel.UUID, now time.Time) error {
	if err := r.AuthorizeWinner(transporterID); err != nil {
		return err
	}
	newStatus, err := r.status.StartTransit()
	if err != nil {
		return err
	}

	r.changeStatus(newStatus, now, nil)
	return nil
}

// PingLocation builds a LocationPinged event for the winning transporter's position.
// It does not mutate the request and nothing is recorded.
func (r *Request) PingLocation(transporterID kernel.UUID, position kernel.Point, now time.Time) (event.Event, error) {
	if err := r.AuthorizeWinner(transporterID); err != nil {
		return event.Event{}, err
	}
	if r.status != InTransit {
		return event.Event{}, fmt.Errorf("%w: location updates require %s, request is %s",
			errs.ErrInvalidTransition, InTransit, r.status)
	}
	if err := position.Validate(); err != nil {
		return event.Event{}, errs.NewValidationError(errs.NewValueIsRequiredErrorWithCause("position", err))
	}

	return event.New(event.LocationPinged, r.id, now, map[string]string{
		event.AttrTransporterID: transporterID.String(),
		event.AttrRequesterID:   r.requesterID.String(),
		event.AttrLatitude:      formatCoordinate(position.Latitude()),
		event.AttrLongitude:     formatCoordinate(position.Longitude()),
	}), nil
}

// CompleteDelivery moves an InTransit request to Completed. For cash jobs markCashReceived
// records that the transporter collected the payment; it is ignored for online jobs.
func (r *Request) CompleteDelivery(transporterID kernel.UUID, markCashReceived bool, now time.Time) error {
	if err := r.AuthorizeWinner(transporterID); err != nil {
		return err
	}
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	if r.paymentMethod == Cash && markCashReceived {
		r.cashReceived = true
	}
	r.changeStatus(newStatus, now, nil)
	return nil
}

// Cancel moves the request to Cancelled. Pending bids are rejected; an accepted bid is
// revoked and the winner cleared. It returns the revoked transporter's profile id, if any,
// so fleet resources bound to the job can be released.
func (r *Request) Cancel(callerID kernel.UUID, now time.Time) (*kernel.UUID, error) {
	if !r.IsRequester(callerID) {
		return nil, errs.ErrUnauthorized
	}
	newStatus, err := r.status.Cancel()
	if err != nil {
		return nil, err
	}

	var revoked *kernel.UUID
	if winner := r.WinningBid(); winner != nil {
		revokedStatus, revokeErr := winner.status.revoke()
		if revokeErr != nil {
			return nil, revokeErr
		}
		winner.status = revokedStatus
		transporterID := winner.transporterID
		revoked = &transporterID
	}
	r.winnerBidID = nil
	r.rejectPendingBids(now, "request was cancelled")

	extra := map[string]string{}
	if revoked != nil {
		extra[event.AttrRevokedTransporterID] = revoked.String()
	}
	r.changeStatus(newStatus, now, extra)

	return revoked, nil
}

// Rate stores the requester's 1..5 score for a completed job and returns the transporter
// profile id that earned it. A job can be rated once.
func (r *Request) Rate(callerID kernel.UUID, score int) (kernel.UUID, error) {
	if !r.IsRequester(callerID) {
		return kernel.UUID{}, errs.ErrUnauthorized
	}
	if r.status != Completed {
		return kernel.UUID{}, fmt.Errorf("%w: only completed requests can be rated, request is %s",
			errs.ErrInvalidTransition, r.status)
	}
	if r.rating != nil {
		return kernel.UUID{}, ErrAlreadyRated
	}
	if score < MinRating || score > MaxRating {
		return kernel.UUID{}, errs.NewValidationError(errs.NewValueIsOutOfRangeError("score", score, MinRating, MaxRating))
	}

	transporterID, _ := r.WinnerTransporterID()
	r.rating = &score
	return transporterID, nil
}

// AuthorizeWinner returns errs.ErrUnauthorized unless transporterID owns the winning bid.
func (r *Request) AuthorizeWinner(transporterID kernel.UUID) error {
	winner, ok := r.WinnerTransporterID()
	if !ok || transporterID.IsZero() || !winner.IsEqual(transporterID) {
		return errs.ErrUnauthorized
	}
	return nil
}

// ActiveBidOf returns the transporter's non-withdrawn bid, or nil.
func (r *Request) ActiveBidOf(transporterID kernel.UUID) *Bid {
	return r.activeBidOf(transporterID)
}

// AdvanceVersion is called by the repository once a write with the current version succeeded.
func (r *Request) AdvanceVersion() {
	r.version++
}

// CheckInvariants verifies the winner/status coupling and the bid uniqueness rules.
func (r *Request) CheckInvariants() error {
	var problems []error

	if r.status.HasWinner() != (r.winnerBidID != nil) {
		problems = append(problems, fmt.Errorf("winner set is %t for status %s", r.winnerBidID != nil, r.status))
	}

	accepted := 0
	active := make(map[kernel.UUID]int)
	for _, b := range r.bids {
		if !b.requestID.IsEqual(r.id) {
			problems = append(problems, fmt.Errorf("bid %s belongs to request %s", b.id, b.requestID))
		}
		if b.status == BidAccepted {
			accepted++
			if r.winnerBidID == nil || !b.id.IsEqual(*r.winnerBidID) {
				problems = append(problems, fmt.Errorf("accepted bid %s is not the winner", b.id))
			}
		}
		if b.status.IsActive() {
			active[b.transporterID]++
		}
	}
	if accepted > 1 {
		problems = append(problems, fmt.Errorf("%d bids are accepted", accepted))
	}
	if r.winnerBidID != nil && accepted == 0 {
		problems = append(problems, fmt.Errorf("winner %s is not an accepted bid", *r.winnerBidID))
	}
	for transporterID, n := range active {
		if n > 1 {
			problems = append(problems, fmt.Errorf("transporter %s has %d active bids", transporterID, n))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvariantViolated, errors.Join(problems...))
	}
	return nil
}

func (r *Request) activeBidOf(transporterID kernel.UUID) *Bid {
	for _, b := range r.bids {
		if b.transporterID.IsEqual(transporterID) && b.status.IsActive() {
			return b
		}
	}
	return nil
}

func (r *Request) rejectPendingBids(now time.Time, reason string) {
	for _, b := range r.bids {
		rejected, err := b.status.reject()
		if err != nil {
			continue
		}
		b.status = rejected
		r.Record(event.New(event.BidRejected, r.id, now, map[string]string{
			event.AttrBidID:         b.id.String(),
			event.AttrTransporterID: b.transporterID.String(),
			event.AttrReason:        reason,
		}))
	}
}

func (r *Request) changeStatus(newStatus Status, now time.Time, extra map[string]string) {
	attrs := map[string]string{
		event.AttrPreviousStatus: r.status.String(),
		event.AttrStatus:         newStatus.String(),
		event.AttrRequesterID:    r.requesterID.String(),
	}
	if transporterID, ok := r.WinnerTransporterID(); ok {
		attrs[event.AttrTransporterID] = transporterID.String()
	}
	maps.Copy(attrs, extra)

	r.status = newStatus
	r.Record(event.New(event.JobStatusChanged, r.id, now, attrs))
}

func (r *Request) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requesterId", err)
	}
	r.requesterID = id
	return nil
}

func (r *Request) setLocation(dst *kernel.Location, param string, loc kernel.Location) error {
	if err := loc.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = loc
	return nil
}

func (r *Request) setScheduledAt(at, now time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("scheduledAt")
	}
	if !at.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("scheduledAt", errors.New("must be in the future"))
	}
	r.scheduledAt = at.UTC()
	return nil
}

func (r *Request) setGoodsType(goodsType string) error {
	goodsType = strings.TrimSpace(goodsType)
	if goodsType == "" {
		return errs.NewValueIsRequiredError("goodsType")
	}
	if len([]rune(goodsType)) > MaxGoodsTypeLength {
		return errs.NewValueIsOutOfRangeError("goodsType", fmt.Sprintf("%d characters", len([]rune(goodsType))), 1, MaxGoodsTypeLength)
	}
	r.goodsType = goodsType
	return nil
}

func (r *Request) setWeightKg(weightKg float64) error {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not greater than 0", weightKg))
	}
	r.weightKg = weightKg
	return nil
}

func (r *Request) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	r.paymentMethod = method
	return nil
}

func (r *Request) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Request) setBids(bids []*Bid) error {
	var problems []error
	for _, b := range bids {
		if err := b.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	r.bids = slices.Clone(bids)
	slices.SortStableFunc(r.bids, func(a, b *Bid) int {
		return a.submittedAt.Compare(b.submittedAt)
	})
	return nil
}

func (r *Request) setRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", *rating, MinRating, MaxRating)
	}
	v := *rating
	r.rating = &v
	return nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
