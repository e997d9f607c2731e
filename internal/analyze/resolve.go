package analyze

import (
	"go/types"
	"strconv"
	"strings"

	"cmpby-generator/internal/common"
	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/match"
	"cmpby-generator/internal/strategy"
)

// TypePath builds a readable path for a key being resolved.
// Examples:
//   - "Note" for the owner itself
//   - "Note.Pitch()" after a call
//   - "RGB[0]" after a positional step
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{parts: []string{root}}
}

// Step appends one key segment to the path.
func (p *TypePath) Step(s keyexpr.Segment) *TypePath {
	parts := append([]string{}, p.parts...)

	switch {
	case s.Name == "":
		parts[len(parts)-1] += "[" + strconv.Itoa(s.Index) + "]"
	case s.Call:
		parts = append(parts, s.Name+"()")
	default:
		parts = append(parts, s.Name)
	}

	return &TypePath{parts: parts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// KeyStrategy resolves the value type of key read from a value of the
// package type owner and classifies it. A key that cannot be followed is
// unreadable; an owner missing from the package falls back.
func (p *Package) KeyStrategy(owner string, key keyexpr.Key) strategy.Strategy {
	obj, ok := p.types.Scope().Lookup(owner).(*types.TypeName)
	if !ok {
		return strategy.Fallback(common.UnknownStr, "unknown type "+owner)
	}

	t, reason := p.follow(obj.Type(), NewTypePath(owner), key.Segments)
	if reason != "" {
		return strategy.Unreadable(reason)
	}

	return strategy.FromType(t, p.types, p.Known)
}

// follow walks segments from t. Fields and methods are looked up in the
// addressable method set until the first call, whose result is not
// addressable.
func (p *Package) follow(t types.Type, path *TypePath, segments []keyexpr.Segment) (types.Type, string) {
	addressable := true

	for _, s := range segments {
		next := path.Step(s)

		if s.Name == "" {
			arr, ok := t.Underlying().(*types.Array)
			if !ok || int64(s.Index) >= arr.Len() {
				return nil, next.String() + " is not an element of " + path.String()
			}

			t, path = arr.Elem(), next

			continue
		}

		obj, _, _ := types.LookupFieldOrMethod(t, addressable, p.types, s.Name)

		switch o := obj.(type) {
		case *types.Var:
			if s.Call {
				return nil, next.String() + ": " + s.Name + " is a field, not a method"
			}

			t = o.Type()
		case *types.Func:
			if !s.Call {
				return nil, next.String() + ": method " + s.Name + " must be called"
			}

			sig, _ := o.Type().(*types.Signature)
			if sig == nil || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
				return nil, next.String() + ": method must take no arguments and return one value"
			}

			t = sig.Results().At(0).Type()
			addressable = false
		default:
			return nil, path.String() + " has no field or method " + s.Name +
				match.DidYouMean(s.Name, selectable(t, addressable))
		}

		path = next
	}

	return t, ""
}

// selectable lists the field and method names reachable from t.
func selectable(t types.Type, addressable bool) []string {
	var names []string

	if st, ok := t.Underlying().(*types.Struct); ok {
		for i := range st.NumFields() {
			names = append(names, st.Field(i).Name())
		}
	}

	recv := t
	if _, isPtr := t.Underlying().(*types.Pointer); addressable && !isPtr && !types.IsInterface(t) {
		recv = types.NewPointer(t)
	}

	mset := types.NewMethodSet(recv)
	for i := range mset.Len() {
		names = append(names, mset.At(i).Obj().Name())
	}

	return names
}
