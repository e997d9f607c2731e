// Package parse turns a definition into the normalized input of the
// generator.
//
// Type-level key lists (internal/keyexpr) and member markers
// (internal/scan) are processed independently and their diagnostics are
// reported together. Two structural failures stop a definition at once
// instead of accumulating: a shape that cannot be compared at all, and a
// definition with neither type-level keys nor marked members.
package parse
