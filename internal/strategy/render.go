package strategy

// Needs is the set of imports a rendered expression depends on.
type Needs uint8

const (
	NeedsCmp Needs = 1 << iota
	NeedsSlices
	NeedsMaphash
	NeedsRuntime
)

// Has reports whether all of other is in n.
func (n Needs) Has(other Needs) bool {
	return n&other == other
}

// CompareExpr renders an int expression comparing l to r. rt is the
// package qualifier of the runtime helpers.
func (s Strategy) CompareExpr(l, r, rt string) string {
	switch s.Compare {
	case CompareBool:
		return call(rt+".Bool", l, r)
	case CompareMethod:
		return call(l+".Compare", r)
	case CompareFunc:
		return call(s.CompareFunc, l, r)
	case CompareOrderedPointer:
		return call(rt+".Pointer", l, r)
	case CompareBoolPointer:
		return call(rt+".BoolPointer", l, r)
	case CompareMethodPointer:
		return call(rt+".ComparerPointer", l, r)
	case CompareOrderedSlice:
		return call("slices.Compare", l, r)
	case CompareMethodSlice:
		return call(rt+".ComparerSlice", l, r)
	default:
		return call("cmp.Compare", l, r)
	}
}

// CompareNeeds reports the imports of CompareExpr.
func (s Strategy) CompareNeeds() Needs {
	switch s.Compare {
	case CompareMethod, CompareFunc:
		return 0
	case CompareOrderedSlice:
		return NeedsSlices
	case CompareOrdered:
		return NeedsCmp
	default:
		return NeedsRuntime
	}
}

// HashStmt renders a statement writing v to the hash h.
func (s Strategy) HashStmt(h, v, rt string) string {
	switch s.Hash {
	case HashMethod:
		return call(v+".Hash", h)
	case HashFunc:
		return call(s.HashFunc, h, v)
	case HashComparablePointer:
		return call(rt+".HashPointer", h, v)
	case HashMethodPointer:
		return call(rt+".HasherPointer", h, v)
	case HashComparableSlice:
		return call(rt+".HashSlice", h, v)
	case HashMethodSlice:
		return call(rt+".HasherSlice", h, v)
	case HashOrdered:
		return call(rt+".HashOrdered", h, v)
	case HashOrderedPointer:
		return call(rt+".HashOrderedPointer", h, v)
	case HashOrderedSlice:
		return call(rt+".HashOrderedSlice", h, v)
	default:
		return call("maphash.WriteComparable", h, v)
	}
}

// HashNeeds reports the imports of HashStmt.
func (s Strategy) HashNeeds() Needs {
	switch s.Hash {
	case HashMethod, HashFunc:
		return 0
	case HashComparable:
		return NeedsMaphash
	default:
		return NeedsRuntime
	}
}

func call(fn string, args ...string) string {
	out := fn + "("
	for i, a := range args {
		if i > 0 {
			out += ", "
		}

		out += a
	}

	return out + ")"
}
