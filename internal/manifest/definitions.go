package manifest

import (
	"go/ast"
	"go/parser"
	"slices"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/strategy"
)

// Unit builds the generator input of the manifest. Marker keys are mapped
// to the directive names of config.
func (f *File) Unit(config gen.GeneratorConfig) *gen.Unit {
	defs := f.BuildDefinitions(config)

	return &gen.Unit{
		PackageName: f.Package,
		PkgPath:     f.PkgPath,
		Dir:         f.Dir,
		Definitions: defs,
		Typer:       newTyper(f, defs, config),
	}
}

// BuildDefinitions converts every definition of the manifest, in file order.
func (f *File) BuildDefinitions(config gen.GeneratorConfig) []*definition.Definition {
	b := builder{path: f.Path, pkgPath: f.PkgPath, config: config}

	out := make([]*definition.Definition, 0, len(f.Definitions))
	for i := range f.Definitions {
		out = append(out, b.definition(&f.Definitions[i]))
	}

	return out
}

type builder struct {
	path    string
	pkgPath string
	config  gen.GeneratorConfig
}

// marker maps a manifest marker key to its directive name. Unknown keys
// are kept as written.
func (b builder) marker(key string) string {
	switch key {
	case CompareKey:
		return b.config.CompareMarker
	case HashKey:
		return b.config.HashMarker
	default:
		return key
	}
}

func (b builder) definition(d *DefinitionSpec) *definition.Definition {
	pos := d.At(b.path)
	def := &definition.Definition{
		Name:     d.Name,
		PkgPath:  b.pkgPath,
		Pos:      pos,
		Generics: generics(d.Generics),
	}

	for _, name := range d.Derive {
		def.Directives = append(def.Directives, definition.Directive{Name: b.marker(name), Pos: pos})
	}

	for _, args := range d.Cmpby {
		def.Directives = append(def.Directives, definition.Directive{
			Name: b.config.CompareMarker, Verb: definition.KeysVerb, Args: args, Pos: pos,
		})
	}

	for _, args := range d.Hashby {
		def.Directives = append(def.Directives, definition.Directive{
			Name: b.config.HashMarker, Verb: definition.KeysVerb, Args: args, Pos: pos,
		})
	}

	switch d.Kind {
	case KindStruct:
		if len(d.Members) == 0 {
			def.Shape = definition.ShapeUnit
			def.Detail = "struct{} has no fields"

			break
		}

		def.Shape = definition.ShapeStruct
		def.Members = b.members(d.Members)
	case KindArray:
		def.Shape = definition.ShapeArray
		def.Members = b.members(d.Members)
	case KindUnion:
		def.Shape = definition.ShapeUnion
		def.Variants = b.variants(d.Variants)
	case KindUnit:
		def.Shape = definition.ShapeUnit
		def.Detail = "struct{} has no fields"
	case KindOpen:
		def.Shape = definition.ShapeOpenUnion
		def.Detail = "interface has no unexported method"
	default:
		def.Detail = "unknown kind " + d.Kind
	}

	return def
}

func (b builder) members(specs []MemberSpec) []definition.Member {
	out := make([]definition.Member, 0, len(specs))

	for i, m := range specs {
		pos := m.At(b.path)
		member := definition.Member{Name: m.Name, Index: i, Type: m.Type, Pos: pos}

		for _, mk := range m.Markers {
			member.Markers = append(member.Markers, definition.Marker{Name: b.marker(mk), Pos: pos})
		}

		out = append(out, member)
	}

	return out
}

func (b builder) variants(specs []VariantSpec) []definition.Variant {
	out := make([]definition.Variant, 0, len(specs))

	for i, v := range specs {
		out = append(out, definition.Variant{
			Name:    v.Name,
			Ordinal: i,
			Pointer: v.Pointer,
			Address: !v.Pointer,
			Generic: v.Generic,
			Members: b.members(v.Members),
			Pos:     v.At(b.path),
		})
	}

	return out
}

func generics(specs []GenericSpec) definition.Generics {
	var g definition.Generics

	for _, s := range specs {
		g.Params = append(g.Params, definition.TypeParam{
			Name:       s.Name,
			Constraint: s.Constraint,
			Imports:    constraintImports(s.Constraint),
		})
	}

	return g
}

// constraintImports lists the packages a constraint refers to. Only single
// element import paths can be told from a qualified name, so "cmp.Ordered"
// yields "cmp".
func constraintImports(constraint string) []string {
	expr, err := parser.ParseExpr(constraint)
	if err != nil {
		return nil
	}

	var out []string

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok && !slices.Contains(out, id.Name) {
			out = append(out, id.Name)
		}

		return false
	})

	return out
}

// known records what the definitions of the manifest generate.
func known(defs []*definition.Definition, config gen.GeneratorConfig) strategy.KnownMap {
	out := strategy.KnownMap{}

	for _, def := range defs {
		switch def.Shape {
		case definition.ShapeStruct, definition.ShapeArray, definition.ShapeUnion:
			out[def.Name] = strategy.Generated{
				Compare: def.Wants(config.CompareMarker),
				Hash:    def.Wants(config.HashMarker),
				Union:   def.Shape == definition.ShapeUnion,
			}
		}
	}

	return out
}
