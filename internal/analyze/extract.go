package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"cmpby-generator/internal/definition"
)

// extractor builds definitions from the syntax and types of a package.
type extractor struct {
	fset    *token.FileSet
	pkg     *types.Package
	decls   map[string]typeDecl
	markers []string
}

func (e *extractor) qualifier(other *types.Package) string {
	if other == e.pkg {
		return ""
	}

	return other.Name()
}

func (e *extractor) definition(name string, dirs []definition.Directive) *definition.Definition {
	td := e.decls[name]
	def := &definition.Definition{
		Name:       name,
		PkgPath:    e.pkg.Path(),
		Pos:        e.fset.Position(td.spec.Name.Pos()),
		Directives: dirs,
	}

	obj, ok := e.pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		def.Detail = "not a package-level type"
		return def
	}

	if obj.IsAlias() {
		def.Detail = "type alias"
		return def
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		def.Detail = "not a named type"
		return def
	}

	def.Generics = e.generics(named)

	switch u := named.Underlying().(type) {
	case *types.Struct:
		if u.NumFields() == 0 {
			def.Shape = definition.ShapeUnit
			def.Detail = "struct{} has no fields"

			return def
		}

		def.Shape = definition.ShapeStruct
		def.Members = e.structMembers(td.spec, u)
	case *types.Array:
		def.Shape = definition.ShapeArray
		def.Members = arrayMembers(u, def.Pos)
	case *types.Interface:
		if !sealed(u) {
			def.Shape = definition.ShapeOpenUnion
			def.Detail = "interface has no unexported method"

			return def
		}

		def.Shape = definition.ShapeUnion
		def.Variants = e.variants(named, u)
	default:
		def.Detail = "underlying type is " + types.TypeString(u, e.qualifier)
	}

	return def
}

func (e *extractor) generics(named *types.Named) definition.Generics {
	var g definition.Generics

	params := named.TypeParams()
	for i := range params.Len() {
		tp := params.At(i)
		param := definition.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), e.qualifier),
		}

		param.Imports = e.imports(tp.Constraint())
		g.Params = append(g.Params, param)
	}

	return g
}

// imports lists the packages other than the current one named in t.
func (e *extractor) imports(t types.Type) []string {
	var out []string

	types.TypeString(t, func(other *types.Package) string {
		if other != e.pkg && !slices.Contains(out, other.Path()) {
			out = append(out, other.Path())
		}

		return other.Name()
	})

	return out
}

// sealed reports whether iface has an unexported method, which only types
// of its own package can implement.
func sealed(iface *types.Interface) bool {
	for i := range iface.NumMethods() {
		if !iface.Method(i).Exported() {
			return true
		}
	}

	return false
}

// structMembers pairs every field of st with the markers of its syntax.
func (e *extractor) structMembers(spec *ast.TypeSpec, st *types.Struct) []definition.Member {
	var fieldMarkers [][]definition.Marker

	if syn, ok := spec.Type.(*ast.StructType); ok {
		for _, f := range syn.Fields.List {
			mk := markers(directives(e.fset, e.markers, f.Doc, f.Comment))

			n := len(f.Names)
			if n == 0 {
				n = 1 // embedded
			}

			for range n {
				fieldMarkers = append(fieldMarkers, mk)
			}
		}
	}

	members := make([]definition.Member, 0, st.NumFields())

	for i := range st.NumFields() {
		f := st.Field(i)
		m := definition.Member{
			Name:  f.Name(),
			Index: i,
			Type:  types.TypeString(f.Type(), e.qualifier),
			Pos:   e.fset.Position(f.Pos()),
		}

		if i < len(fieldMarkers) {
			m.Markers = fieldMarkers[i]
		}

		members = append(members, m)
	}

	return members
}

func arrayMembers(arr *types.Array, pos token.Position) []definition.Member {
	members := make([]definition.Member, 0, arr.Len())
	for i := range int(arr.Len()) {
		members = append(members, definition.Member{Index: i, Type: arr.Elem().String(), Pos: pos})
	}

	return members
}

// variants finds the named types of the package implementing the sealed
// interface union, in declaration order.
func (e *extractor) variants(union *types.Named, iface *types.Interface) []definition.Variant {
	var candidates []*types.TypeName

	scope := e.pkg.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() || obj == union.Obj() {
			continue
		}

		if _, isIface := obj.Type().Underlying().(*types.Interface); isIface {
			continue
		}

		candidates = append(candidates, obj)
	}

	slices.SortFunc(candidates, func(a, b *types.TypeName) int {
		return int(a.Pos() - b.Pos())
	})

	var out []definition.Variant

	for _, obj := range candidates {
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}

		v, ok := e.implements(named, union, iface)
		if !ok {
			continue
		}

		v.Name = obj.Name()
		v.Ordinal = len(out)
		v.Pos = e.fset.Position(obj.Pos())

		if st, ok := named.Underlying().(*types.Struct); ok {
			if td, ok := e.decls[obj.Name()]; ok {
				v.Members = e.structMembers(td.spec, st)
			}
		}

		out = append(out, v)
	}

	return out
}

// implements checks whether named or *named implements the union. A
// variant implemented by named is also matched through its address. A
// generic variant must take as many type parameters as the union. When
// either side is generic, methods are matched by name and arity since
// go/types leaves Implements unspecified for uninstantiated types.
func (e *extractor) implements(named, union *types.Named, iface *types.Interface) (definition.Variant, bool) {
	var v definition.Variant

	if named.TypeParams().Len() > 0 || union.TypeParams().Len() > 0 {
		if named.TypeParams().Len() > 0 && named.TypeParams().Len() != union.TypeParams().Len() {
			return v, false
		}

		v.Generic = named.TypeParams().Len() > 0

		switch {
		case e.hasMethods(named, iface):
			v.Address = e.hasMethods(types.NewPointer(named), iface)
		case e.hasMethods(types.NewPointer(named), iface):
			v.Pointer = true
		default:
			return v, false
		}

		return v, true
	}

	switch {
	case types.Implements(named, iface):
		v.Address = types.Implements(types.NewPointer(named), iface)
	case types.Implements(types.NewPointer(named), iface):
		v.Pointer = true
	default:
		return v, false
	}

	return v, true
}

func (e *extractor) hasMethods(t types.Type, iface *types.Interface) bool {
	for i := range iface.NumMethods() {
		want := iface.Method(i)

		obj, _, _ := types.LookupFieldOrMethod(t, false, e.pkg, want.Name())

		fn, ok := obj.(*types.Func)
		if !ok {
			return false
		}

		got, _ := fn.Type().(*types.Signature)
		sig, _ := want.Type().(*types.Signature)

		if got == nil || sig == nil ||
			got.Params().Len() != sig.Params().Len() || got.Results().Len() != sig.Results().Len() {
			return false
		}
	}

	return true
}
