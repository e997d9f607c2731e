package fold

import (
	"strings"

	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/strategy"
)

// Leaf is a key paired with its strategy.
type Leaf struct {
	Key      keyexpr.Key
	Strategy strategy.Strategy
}

// Compare renders the int term comparing the key read from left and right.
func (l Leaf) Compare(left, right, rt string) string {
	return l.Strategy.CompareExpr(l.Key.Render(left), l.Key.Render(right), rt)
}

// Hash renders the statement hashing the key read from recv into h.
func (l Leaf) Hash(h, recv, rt string) string {
	return l.Strategy.HashStmt(h, l.Key.Render(recv), rt)
}

// CompareTerms renders the comparison term of every leaf.
func CompareTerms(leaves []Leaf, left, right, rt string) []string {
	terms := make([]string, 0, len(leaves))
	for _, l := range leaves {
		terms = append(terms, l.Compare(left, right, rt))
	}

	return terms
}

// HashStmts renders the hash statement of every leaf.
func HashStmts(leaves []Leaf, h, recv, rt string) []string {
	stmts := make([]string, 0, len(leaves))
	for _, l := range leaves {
		stmts = append(stmts, l.Hash(h, recv, rt))
	}

	return stmts
}

// Chain renders the lexicographic composition of int terms: the first
// non-zero term is returned, the last term is returned as is. No term
// compares equal.
func Chain(terms []string) string {
	if len(terms) == 0 {
		return "return 0\n"
	}

	var sb strings.Builder

	for _, t := range terms[:len(terms)-1] {
		sb.WriteString("if c := " + t + "; c != 0 {\nreturn c\n}\n")
	}

	sb.WriteString("return " + terms[len(terms)-1] + "\n")

	return sb.String()
}

// Accumulate renders hash statements in order.
func Accumulate(stmts []string) string {
	var sb strings.Builder

	for _, s := range stmts {
		sb.WriteString(s + "\n")
	}

	return sb.String()
}

// Splice inserts inner into outer before index at. A negative index
// appends.
func Splice[T any](outer []T, at int, inner []T) []T {
	if at < 0 || at > len(outer) {
		at = len(outer)
	}

	out := make([]T, 0, len(outer)+len(inner))
	out = append(out, outer[:at]...)
	out = append(out, inner...)

	return append(out, outer[at:]...)
}

// CompareNeeds merges the imports of the comparison terms of leaves.
func CompareNeeds(leaves []Leaf) strategy.Needs {
	var n strategy.Needs
	for _, l := range leaves {
		n |= l.Strategy.CompareNeeds()
	}

	return n
}

// HashNeeds merges the imports of the hash statements of leaves.
func HashNeeds(leaves []Leaf) strategy.Needs {
	var n strategy.Needs
	for _, l := range leaves {
		n |= l.Strategy.HashNeeds()
	}

	return n
}
