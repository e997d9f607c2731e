package manifest

import (
	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/keyexpr"
)

// Export describes the definitions of unit as a manifest. Key types are
// resolved with the unit's typer and written as hints, so the manifest can
// be generated from without the Go sources.
func Export(unit *gen.Unit, config gen.GeneratorConfig) *File {
	f := &File{
		Version: "1",
		Package: unit.PackageName,
		PkgPath: unit.PkgPath,
		Dir:     unit.Dir,
	}

	e := exporter{config: config, typer: unit.Typer}
	for _, def := range unit.Definitions {
		f.Definitions = append(f.Definitions, e.definition(def))
	}

	return f
}

type exporter struct {
	config gen.GeneratorConfig
	typer  gen.KeyTyper
}

func (e exporter) key(name string) string {
	switch name {
	case e.config.CompareMarker:
		return CompareKey
	case e.config.HashMarker:
		return HashKey
	default:
		return name
	}
}

func (e exporter) definition(def *definition.Definition) DefinitionSpec {
	d := DefinitionSpec{Name: def.Name, Kind: kindOf(def.Shape)}

	for _, dir := range def.Directives {
		switch {
		case dir.Verb == "" && !d.Derive.Contains(e.key(dir.Name)):
			d.Derive = append(d.Derive, e.key(dir.Name))
		case dir.Verb == definition.KeysVerb && dir.Name == e.config.CompareMarker:
			d.Cmpby = append(d.Cmpby, dir.Args)
		case dir.Verb == definition.KeysVerb && dir.Name == e.config.HashMarker:
			d.Hashby = append(d.Hashby, dir.Args)
		}
	}

	for _, p := range def.Generics.Params {
		d.Generics = append(d.Generics, GenericSpec{Name: p.Name, Constraint: p.Constraint})
	}

	d.Members = e.members(def.Members)

	for _, v := range def.Variants {
		d.Variants = append(d.Variants, VariantSpec{
			Name:    v.Name,
			Pointer: v.Pointer,
			Generic: v.Generic,
			Members: e.members(v.Members),
		})
	}

	d.Types = e.types(def)

	return d
}

func (e exporter) members(members []definition.Member) []MemberSpec {
	var out []MemberSpec

	for _, m := range members {
		spec := MemberSpec{Name: m.Name, Type: m.Type}
		for _, mk := range m.Markers {
			if mk.Verb == "" {
				spec.Markers = append(spec.Markers, e.key(mk.Name))
			}
		}

		out = append(out, spec)
	}

	return out
}

// types resolves the type of every type-level key that the member types
// do not already give.
func (e exporter) types(def *definition.Definition) map[string]string {
	if e.typer == nil {
		return nil
	}

	out := map[string]string{}

	for _, marker := range []string{e.config.CompareMarker, e.config.HashMarker} {
		var dirs []definition.Directive
		for _, dir := range def.DirectivesFor(marker) {
			if dir.Verb == definition.KeysVerb {
				dirs = append(dirs, dir)
			}
		}

		list, err := keyexpr.ParseDirectives(dirs, keyexpr.Options{Sentinel: e.config.Sentinel})
		if err != nil {
			continue
		}

		for _, k := range list.Keys {
			if len(k.Segments) == 1 && !k.Segments[0].Call {
				continue
			}

			s := e.typer.KeyStrategy(def.Name, k)
			if s.Unreadable == "" && s.CompareIssue == "" && s.HashIssue == "" {
				out[k.String()] = s.Type
			}
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func kindOf(shape definition.Shape) string {
	switch shape {
	case definition.ShapeStruct:
		return KindStruct
	case definition.ShapeArray:
		return KindArray
	case definition.ShapeUnion:
		return KindUnion
	case definition.ShapeUnit:
		return KindUnit
	case definition.ShapeOpenUnion:
		return KindOpen
	default:
		return ""
	}
}
