// Package transporter models the supply side of the marketplace: the transporter
// Profile aggregate and the Driver and Vehicle entities of its fleet.
//
// Key business rules:
//   - A user owns at most one Profile; agencies must register a trade licence
//   - The service radius defaults to DefaultServiceRadiusKm and never exceeds MaxServiceRadiusKm
//   - Drivers need an unexpired licence and vehicles an unexpired fitness certificate
//     to be assigned to a job
//   - Registration and licence numbers are unique within a fleet
package transporter
