// Package services holds the domain services of the marketplace: logic that reads
// several aggregates at once and belongs to none of them.
//
// The package includes:
//   - MatchingEngine: ranks requests near a transporter and transporters near a pickup
//   - EarningsCalculator: sums a transporter's completed jobs by payment method
//
// Both services are pure; callers load the aggregates and persist nothing afterwards.
package services
