// Package definition is the structured input handed to the generator.
//
// A Definition is what an upstream parser (the Go source loader in
// internal/analyze or the YAML manifest in internal/manifest) knows about
// one annotated type: its shape, members or variants, generic parameters,
// the raw text of every type-level directive and the opt-in markers seen
// on each member. Member types are carried only as opaque strings; the
// generator core never interprets them.
package definition
