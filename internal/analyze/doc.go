// Package analyze loads Go packages and extracts annotated definitions.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build
// one definition.Definition per type carrying a //cmpby or //hashby
// directive, and resolves the value type of every key so the generator
// can pick a comparison strategy.
//
// Key types:
//   - Package: the definitions of one loaded package, also a gen.KeyTyper
//   - Directive parsing: //marker, //marker:verb args
//   - Shape detection: struct, array, sealed interface (union)
package analyze
