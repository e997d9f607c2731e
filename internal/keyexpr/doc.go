// Package keyexpr parses the key lists written in type-level directives.
//
// A key list is a comma-separated sequence of accessors evaluated against
// an instance of the annotated type:
//
//	//cmpby:keys Channel(), Pitch(), Meta.Created, Meta.Owner().Name, _fields
//
// Accepted forms are a member name, a dotted member path, a zero-argument
// method call and any dotted chain of those. Everything else (literals,
// operators, closures, indexing, calls with arguments) is rejected, one
// diagnostic per offending item, and all items are checked before the
// parse fails.
//
// The splice placeholder (by default "_fields") is not a key. It marks the
// position where member-level keys are inserted and is only meaningful for
// comparator key lists.
package keyexpr
