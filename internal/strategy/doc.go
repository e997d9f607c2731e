// Package strategy classifies the value type of a key and renders the Go
// expression that compares or hashes it.
//
// A Strategy is chosen once per key by a frontend (the go/types loader or
// the YAML manifest) and then rendered by the folder. Rendering needs only
// the runtime helper qualifier, never the original type.
package strategy
