// Package gen emits the comparison and hash routines of annotated types.
//
// Generation uses text/template + go/format. Every package yields at most
// one file, <pkg>_cmpby.go, holding in source order:
//   - Compare, Equal, Less, LessOrEqual, Greater and GreaterOrEqual
//     methods for records, plus a Hash method
//   - Compare<T>, Equal<T>, Less<T> and Hash<T> functions for unions,
//     with an unexported per-variant dispatch
//   - a failure stand-in for every derivation that did not validate
package gen
