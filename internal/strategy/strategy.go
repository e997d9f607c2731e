package strategy

import (
	"fmt"

	"cmpby-generator/internal/common"
)

// CompareKind selects how two key values are compared.
type CompareKind int

const (
	// CompareOrdered uses cmp.Compare.
	CompareOrdered CompareKind = iota
	// CompareBool orders false before true.
	CompareBool
	// CompareMethod calls the value's own Compare method.
	CompareMethod
	// CompareFunc calls a generated union comparator.
	CompareFunc
	// CompareOrderedPointer compares pointed-to ordered values, nil first.
	CompareOrderedPointer
	// CompareBoolPointer compares pointed-to bools, nil first.
	CompareBoolPointer
	// CompareMethodPointer compares pointed-to comparers, nil first.
	CompareMethodPointer
	// CompareOrderedSlice uses slices.Compare.
	CompareOrderedSlice
	// CompareMethodSlice compares slices of comparers element-wise.
	CompareMethodSlice
)

// String returns a human-readable representation of the CompareKind.
func (k CompareKind) String() string {
	switch k {
	case CompareOrdered:
		return "ordered"
	case CompareBool:
		return "bool"
	case CompareMethod:
		return "method"
	case CompareFunc:
		return "func"
	case CompareOrderedPointer:
		return "ordered pointer"
	case CompareBoolPointer:
		return "bool pointer"
	case CompareMethodPointer:
		return "method pointer"
	case CompareOrderedSlice:
		return "ordered slice"
	case CompareMethodSlice:
		return "method slice"
	default:
		return common.UnknownStr
	}
}

// HashKind selects how a key value is written to a hash.
type HashKind int

const (
	// HashComparable uses maphash.WriteComparable.
	HashComparable HashKind = iota
	// HashOrdered writes every NaN alike, matching cmp.Compare.
	HashOrdered
	// HashMethod calls the value's own Hash method.
	HashMethod
	// HashFunc calls a generated union hasher.
	HashFunc
	// HashComparablePointer hashes a presence flag and the pointed-to value.
	HashComparablePointer
	// HashMethodPointer hashes a presence flag and calls Hash on the target.
	HashMethodPointer
	// HashComparableSlice hashes the length and every element.
	HashComparableSlice
	// HashMethodSlice hashes the length and calls Hash on every element.
	HashMethodSlice
	// HashOrderedPointer hashes a presence flag and the pointed-to value,
	// NaN canonicalized.
	HashOrderedPointer
	// HashOrderedSlice hashes the length and every element, NaN
	// canonicalized.
	HashOrderedSlice
)

// String returns a human-readable representation of the HashKind.
func (k HashKind) String() string {
	switch k {
	case HashComparable:
		return "comparable"
	case HashOrdered:
		return "ordered"
	case HashMethod:
		return "method"
	case HashFunc:
		return "func"
	case HashComparablePointer:
		return "comparable pointer"
	case HashMethodPointer:
		return "method pointer"
	case HashComparableSlice:
		return "comparable slice"
	case HashMethodSlice:
		return "method slice"
	case HashOrderedPointer:
		return "ordered pointer"
	case HashOrderedSlice:
		return "ordered slice"
	default:
		return common.UnknownStr
	}
}

// Strategy is the resolved handling of one key.
type Strategy struct {
	Compare CompareKind
	Hash    HashKind
	// CompareFunc and HashFunc name the generated union functions called by
	// the CompareFunc and HashFunc kinds.
	CompareFunc string
	HashFunc    string
	// Type is the key's value type as written, for messages.
	Type string
	// CompareIssue and HashIssue explain a fallback. Empty when the kind
	// was resolved.
	CompareIssue string
	HashIssue    string
	// Unreadable is set when the key cannot be read from its owner at
	// all. No code can be emitted for such a key.
	Unreadable string
}

// Ordered is the strategy of a cmp.Ordered value.
func Ordered(typ string) Strategy {
	return Strategy{Compare: CompareOrdered, Hash: HashComparable, Type: typ}
}

// MaybeNaN is the strategy of an ordered value that may hold a NaN: a
// float, or a type parameter constrained by cmp.Ordered.
func MaybeNaN(typ string) Strategy {
	return Strategy{Compare: CompareOrdered, Hash: HashOrdered, Type: typ}
}

// Bool is the strategy of a boolean value.
func Bool(typ string) Strategy {
	return Strategy{Compare: CompareBool, Hash: HashComparable, Type: typ}
}

// Method is the strategy of a value with its own Compare and Hash methods.
func Method(typ string) Strategy {
	return Strategy{Compare: CompareMethod, Hash: HashMethod, Type: typ}
}

// Union is the strategy of a value of a generated union type.
func Union(typ, typeName string) Strategy {
	return Strategy{
		Compare:     CompareFunc,
		Hash:        HashFunc,
		CompareFunc: common.FuncName("Compare", typeName),
		HashFunc:    common.FuncName("Hash", typeName),
		Type:        typ,
	}
}

// Fallback is the strategy used when nothing is known about the type.
func Fallback(typ, reason string) Strategy {
	s := Ordered(typ)
	s.CompareIssue = reason
	s.HashIssue = reason

	return s
}

// Unreadable is the strategy of a key that names no member or method of
// its owner.
func Unreadable(reason string) Strategy {
	return Strategy{Type: common.UnknownStr, Unreadable: reason}
}

// CompareWarning renders the unresolved_type message of a comparison
// fallback for key, or "" when the comparison kind was resolved.
func (s Strategy) CompareWarning(key string) string {
	if s.CompareIssue == "" {
		return ""
	}

	return fmt.Sprintf("cannot order key `%s` of type %s: %s; falling back to cmp.Compare",
		key, s.Type, s.CompareIssue)
}

// HashWarning renders the unresolved_type message of a hashing fallback
// for key, or "" when the hash kind was resolved.
func (s Strategy) HashWarning(key string) string {
	if s.HashIssue == "" {
		return ""
	}

	return fmt.Sprintf("cannot hash key `%s` of type %s: %s; falling back to maphash.WriteComparable",
		key, s.Type, s.HashIssue)
}

// Pointer lifts an element strategy to a pointer to it. A kind without a
// pointer form falls back with an issue.
func Pointer(elem Strategy) Strategy {
	out := Strategy{Type: "*" + elem.Type, CompareIssue: elem.CompareIssue, HashIssue: elem.HashIssue}

	switch elem.Compare {
	case CompareOrdered:
		out.Compare = CompareOrderedPointer
	case CompareBool:
		out.Compare = CompareBoolPointer
	case CompareMethod:
		out.Compare = CompareMethodPointer
	default:
		out.Compare = CompareOrdered
		out.CompareIssue = "no pointer form for " + elem.Compare.String() + " comparison"
	}

	switch elem.Hash {
	case HashComparable:
		out.Hash = HashComparablePointer
	case HashOrdered:
		out.Hash = HashOrderedPointer
	case HashMethod:
		out.Hash = HashMethodPointer
	default:
		out.Hash = HashComparable
		out.HashIssue = "no pointer form for " + elem.Hash.String() + " hashing"
	}

	return out
}

// Slice lifts an element strategy to a slice of it. A kind without a
// slice form falls back with an issue.
func Slice(elem Strategy) Strategy {
	out := Strategy{Type: "[]" + elem.Type, CompareIssue: elem.CompareIssue, HashIssue: elem.HashIssue}

	switch elem.Compare {
	case CompareOrdered:
		out.Compare = CompareOrderedSlice
	case CompareMethod:
		out.Compare = CompareMethodSlice
	default:
		out.Compare = CompareOrdered
		out.CompareIssue = "no slice form for " + elem.Compare.String() + " comparison"
	}

	switch elem.Hash {
	case HashComparable:
		out.Hash = HashComparableSlice
	case HashOrdered:
		out.Hash = HashOrderedSlice
	case HashMethod:
		out.Hash = HashMethodSlice
	default:
		out.Hash = HashComparable
		out.HashIssue = "no slice form for " + elem.Hash.String() + " hashing"
	}

	return out
}
