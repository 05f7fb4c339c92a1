// Package transport provides the Request aggregate: a shipment job posted by a
// requester together with the bids transporters submit against it.
//
// The package includes:
//   - Request: the aggregate root that owns its bids and drives the job lifecycle
//   - Bid: one transporter's priced offer, mutated only through its Request
//   - Status and BidStatus: state machines for requests and bids
//   - PaymentMethod: Cash or Online settlement
//
// Key business rules:
//   - A request is created Open with a future pickup time and positive weight
//   - The first bid moves Open to Bidding; a transporter holds one active bid per request
//   - Accepting a bid confirms the request and rejects every other pending bid
//   - Only the winning transporter starts transit, pings its location and completes delivery
//   - Cancelling revokes the winner and rejects pending bids
//   - A pending bid on a request that stopped accepting bids is inert
//
// Mutations record domain events (see package event) that the unit of work
// persists alongside the aggregate.
package transport
