// Package diagnostic provides structured errors and warnings for the
// cmpby generator.
//
// Key capabilities:
//   - Positioned diagnostics with a stable code per failure kind
//   - Accumulation of independent errors into a single List
//   - Distinguished structural failures (no field, bad shape) that stop
//     processing of one definition only
package diagnostic
