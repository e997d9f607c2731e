// Package match suggests the intended spelling of a misspelled name.
//
// Diagnostics about unknown members, methods, directive verbs and manifest
// fields use it to append "did you mean ...?" hints. Names are compared
// after case folding and separator stripping, by Levenshtein distance.
package match
