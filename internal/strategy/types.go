package strategy

import (
	"go/types"
)

// Generated describes what will be generated for a named type of the
// package being processed.
type Generated struct {
	Compare bool // carries a //cmpby directive
	Hash    bool // carries a //hashby directive
	Union   bool // is a sealed interface
}

// Known looks up generated capabilities by type name.
type Known interface {
	Lookup(typeName string) (Generated, bool)
}

// KnownMap is a Known backed by a map.
type KnownMap map[string]Generated

// Lookup implements Known.
func (m KnownMap) Lookup(typeName string) (Generated, bool) {
	g, ok := m[typeName]

	return g, ok
}

// FromType classifies t. pkg is the package being generated; named types
// declared in it are looked up in known first.
func FromType(t types.Type, pkg *types.Package, known Known) Strategy {
	c := classifier{pkg: pkg, known: known}
	s := Strategy{Type: types.TypeString(t, types.RelativeTo(pkg))}

	s.Compare, s.CompareFunc, s.CompareIssue = c.compare(t)
	s.Hash, s.HashFunc, s.HashIssue = c.hash(t)

	return s
}

type classifier struct {
	pkg   *types.Package
	known Known
}

func (c classifier) generated(t types.Type) (Generated, string, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || c.known == nil || named.Obj().Pkg() != c.pkg {
		return Generated{}, "", false
	}

	g, ok := c.known.Lookup(named.Obj().Name())

	return g, named.Obj().Name(), ok
}

func (c classifier) compare(t types.Type) (CompareKind, string, string) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		elem := Strategy{}
		elem.Compare, _, elem.CompareIssue = c.compare(ptr.Elem())
		lifted := Pointer(elem)

		return lifted.Compare, "", lifted.CompareIssue
	}

	if g, name, ok := c.generated(t); ok && g.Compare {
		if g.Union {
			return CompareFunc, Union("", name).CompareFunc, ""
		}

		return CompareMethod, "", ""
	}

	if hasCompareMethod(t, c.pkg) {
		return CompareMethod, "", ""
	}

	if tp, ok := types.Unalias(t).(*types.TypeParam); ok {
		if iface, ok := tp.Constraint().Underlying().(*types.Interface); ok && orderedConstraint(iface) {
			return CompareOrdered, "", ""
		}

		return CompareOrdered, "", "type parameter " + tp.Obj().Name() + " is neither cmp.Ordered nor a comparer"
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Info()&types.IsBoolean != 0:
			return CompareBool, "", ""
		case isOrderedBasic(u):
			return CompareOrdered, "", ""
		}

		return CompareOrdered, "", u.Name() + " is not ordered"
	case *types.Slice:
		elem := Strategy{}
		elem.Compare, _, elem.CompareIssue = c.compare(u.Elem())
		lifted := Slice(elem)

		return lifted.Compare, "", lifted.CompareIssue
	}

	return CompareOrdered, "", "no Compare method and not ordered"
}

// hash lifts unnamed pointers before looking for a Hash method: the
// method set of *T includes the methods of T, and calling them through a
// nil pointer would panic.
func (c classifier) hash(t types.Type) (HashKind, string, string) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		elem := Strategy{}
		elem.Hash, _, elem.HashIssue = c.hash(ptr.Elem())
		lifted := Pointer(elem)

		return lifted.Hash, "", lifted.HashIssue
	}

	if g, name, ok := c.generated(t); ok && g.Hash {
		if g.Union {
			return HashFunc, Union("", name).HashFunc, ""
		}

		return HashMethod, "", ""
	}

	if hasHashMethod(t, c.pkg) {
		return HashMethod, "", ""
	}

	if mayBeNaN(t) {
		return HashOrdered, "", ""
	}

	if sl, ok := t.Underlying().(*types.Slice); ok {
		elem := Strategy{}
		elem.Hash, _, elem.HashIssue = c.hash(sl.Elem())
		lifted := Slice(elem)

		return lifted.Hash, "", lifted.HashIssue
	}

	if types.Comparable(t) {
		return HashComparable, "", ""
	}

	return HashComparable, "", "no Hash method and not comparable"
}

func hasCompareMethod(t types.Type, pkg *types.Package) bool {
	sig := method(t, pkg, "Compare")
	if sig == nil || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return false
	}

	res, ok := sig.Results().At(0).Type().(*types.Basic)

	return ok && res.Kind() == types.Int && types.Identical(sig.Params().At(0).Type(), t)
}

func hasHashMethod(t types.Type, pkg *types.Package) bool {
	sig := method(t, pkg, "Hash")
	if sig == nil || sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return false
	}

	return types.TypeString(sig.Params().At(0).Type(), nil) == "*hash/maphash.Hash"
}

// method finds a method in the value method set of t.
func method(t types.Type, pkg *types.Package, name string) *types.Signature {
	obj, _, _ := types.LookupFieldOrMethod(t, false, pkg, name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil
	}

	sig, _ := fn.Type().(*types.Signature)

	return sig
}

// mayBeNaN reports whether t is a float or a type parameter whose type
// set is ordered, and so may include floats.
func mayBeNaN(t types.Type) bool {
	if tp, ok := types.Unalias(t).(*types.TypeParam); ok {
		iface, ok := tp.Constraint().Underlying().(*types.Interface)

		return ok && orderedConstraint(iface)
	}

	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsFloat != 0
}

func isOrderedBasic(b *types.Basic) bool {
	return b.Info()&(types.IsInteger|types.IsFloat|types.IsString) != 0 && b.Info()&types.IsUntyped == 0
}

// orderedConstraint reports whether every type in the type set of iface
// is ordered, as for cmp.Ordered.
func orderedConstraint(iface *types.Interface) bool {
	for i := range iface.NumEmbeddeds() {
		switch e := types.Unalias(iface.EmbeddedType(i)).(type) {
		case *types.Union:
			if e.Len() == 0 {
				return false
			}

			for j := range e.Len() {
				b, ok := e.Term(j).Type().Underlying().(*types.Basic)
				if !ok || !isOrderedBasic(b) {
					return false
				}
			}

			return true
		case *types.Basic:
			return isOrderedBasic(e)
		default:
			if inner, ok := e.Underlying().(*types.Interface); ok && orderedConstraint(inner) {
				return true
			}
		}
	}

	return false
}
