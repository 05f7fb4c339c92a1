// Package kernel provides the value objects shared by every marketplace aggregate.
//
// The package includes:
//   - UUID: identifiers for aggregates, entities and callers
//   - Point, Address, Location: validated coordinates plus the administrative address
//     (division, district, thana), with Haversine distance on a 6371 km sphere
//   - BoundingBox: a conservative lat/lng pre-filter around a Point
//   - Money: a non-negative decimal amount with a currency code
//
// All values are immutable. Zero values are invalid and fail Validate; use the
// constructors, which report every violated field at once.
package kernel
