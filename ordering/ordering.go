package ordering

import (
	"cmp"
	"hash/maphash"
)

// Comparer is implemented by types with a total order of their own.
type Comparer[T any] interface {
	Compare(other T) int
}

// Hasher is implemented by types that write their keys to a hash.
type Hasher interface {
	Hash(h *maphash.Hash)
}

// Bool orders false before true.
func Bool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

// Pointer compares the values x and y point to. Nil orders first.
func Pointer[T cmp.Ordered](x, y *T) int {
	if c, done := nilFirst(x, y); done {
		return c
	}

	return cmp.Compare(*x, *y)
}

// BoolPointer compares the bools x and y point to. Nil orders first.
func BoolPointer(x, y *bool) int {
	if c, done := nilFirst(x, y); done {
		return c
	}

	return Bool(*x, *y)
}

// ComparerPointer compares the values x and y point to with their Compare
// method. Nil orders first.
func ComparerPointer[T Comparer[T]](x, y *T) int {
	if c, done := nilFirst(x, y); done {
		return c
	}

	return (*x).Compare(*y)
}

// ComparerSlice compares x and y element by element with the elements'
// Compare method. A shorter slice that is a prefix of the other orders
// first, as for slices.Compare.
func ComparerSlice[S ~[]T, T Comparer[T]](x, y S) int {
	for i := range min(len(x), len(y)) {
		if c := x[i].Compare(y[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(x), len(y))
}

// HashPointer writes whether p is nil and, if not, the value it points to.
func HashPointer[T comparable](h *maphash.Hash, p *T) {
	if p == nil {
		_ = h.WriteByte(0)
		return
	}

	_ = h.WriteByte(1)
	maphash.WriteComparable(h, *p)
}

// HashOrdered writes v so that values cmp.Compare reports equal hash
// alike. Every NaN writes the same bytes.
func HashOrdered[T cmp.Ordered](h *maphash.Hash, v T) {
	if v != v {
		_ = h.WriteByte(0)
		return
	}

	_ = h.WriteByte(1)
	maphash.WriteComparable(h, v)
}

// HashOrderedPointer writes whether p is nil and, if not, the value it
// points to as HashOrdered does.
func HashOrderedPointer[T cmp.Ordered](h *maphash.Hash, p *T) {
	if p == nil {
		_ = h.WriteByte(0)
		return
	}

	_ = h.WriteByte(1)
	HashOrdered(h, *p)
}

// HashOrderedSlice writes the length of s and every element as HashOrdered
// does.
func HashOrderedSlice[S ~[]T, T cmp.Ordered](h *maphash.Hash, s S) {
	maphash.WriteComparable(h, len(s))

	for _, v := range s {
		HashOrdered(h, v)
	}
}

// HasherPointer writes whether p is nil and, if not, hashes the value it
// points to with its Hash method.
func HasherPointer[T Hasher](h *maphash.Hash, p *T) {
	if p == nil {
		_ = h.WriteByte(0)
		return
	}

	_ = h.WriteByte(1)
	(*p).Hash(h)
}

// HashSlice writes the length of s and every element.
func HashSlice[S ~[]T, T comparable](h *maphash.Hash, s S) {
	maphash.WriteComparable(h, len(s))

	for _, v := range s {
		maphash.WriteComparable(h, v)
	}
}

// HasherSlice writes the length of s and hashes every element with its
// Hash method.
func HasherSlice[S ~[]T, T Hasher](h *maphash.Hash, s S) {
	maphash.WriteComparable(h, len(s))

	for _, v := range s {
		v.Hash(h)
	}
}

func nilFirst[T any](x, y *T) (int, bool) {
	switch {
	case x == nil && y == nil:
		return 0, true
	case x == nil:
		return -1, true
	case y == nil:
		return 1, true
	default:
		return 0, false
	}
}
