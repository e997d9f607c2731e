// Package ordering holds the small generic helpers called by code that
// cmpby-generator emits: orderings for bools, optional values and slices,
// and the matching hash writers.
//
// Every comparison returns a negative number, zero or a positive number
// like cmp.Compare. Nil pointers order before non-nil ones.
package ordering
