package manifest

import (
	"fmt"
	"go/token"
	"slices"

	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/match"
)

var (
	kinds   = []string{KindStruct, KindArray, KindUnion, KindUnit, KindOpen}
	markers = []string{CompareKey, HashKey}
)

// Validate checks the structure of a manifest. Key lists are not parsed
// here: they are reported by the generator like directives in Go source.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(token.Position{}, diagnostic.CodeManifest, "manifest is nil", "")
		return res
	}

	file := token.Position{Filename: f.Path}

	if f.Version != "1" {
		res.AddError(file, diagnostic.CodeManifest, fmt.Sprintf("unsupported version %q", f.Version), "")
	}

	if f.Package == "" {
		res.AddError(file, diagnostic.CodeManifest, "package is required", "")
	}

	seen := map[string]bool{}

	for i := range f.Definitions {
		d := &f.Definitions[i]
		pos := d.At(f.Path)

		if d.Name == "" {
			res.AddError(pos, diagnostic.CodeManifest, fmt.Sprintf("definition %d has no name", i), "")
			continue
		}

		if seen[d.Name] {
			res.AddError(pos, diagnostic.CodeManifest, "duplicate definition", d.Name)
		}

		seen[d.Name] = true

		validateDefinition(res, f.Path, d)
	}

	return res
}

func validateDefinition(res *diagnostic.Diagnostics, path string, d *DefinitionSpec) {
	pos := d.At(path)

	if !slices.Contains(kinds, d.Kind) {
		res.AddError(pos, diagnostic.CodeManifest,
			fmt.Sprintf("unknown kind %q", d.Kind)+match.DidYouMean(d.Kind, kinds), d.Name)
	}

	if d.Derive.IsEmpty() && d.Cmpby.IsEmpty() && d.Hashby.IsEmpty() {
		res.AddWarning(pos, diagnostic.CodeManifest, "nothing to generate: no derive, cmpby or hashby", d.Name)
	}

	for _, name := range d.Derive {
		if !validMarker(name) {
			res.AddError(pos, diagnostic.CodeManifest, fmt.Sprintf("cannot derive %q", name)+match.DidYouMean(name, markers), d.Name)
		}
	}

	if d.Kind == KindUnion && len(d.Members) > 0 {
		res.AddError(pos, diagnostic.CodeManifest, "a union has variants, not members", d.Name)
	}

	if d.Kind != KindUnion && len(d.Variants) > 0 {
		res.AddError(pos, diagnostic.CodeManifest, "only a union has variants", d.Name)
	}

	validateMembers(res, path, d.Name, d.Kind == KindArray, d.Members)

	variants := map[string]bool{}

	for _, v := range d.Variants {
		if v.Name == "" {
			res.AddError(v.At(path), diagnostic.CodeManifest, "variant has no name", d.Name)
			continue
		}

		if variants[v.Name] {
			res.AddError(v.At(path), diagnostic.CodeManifest, fmt.Sprintf("duplicate variant %s", v.Name), d.Name)
		}

		variants[v.Name] = true

		validateMembers(res, path, d.Name, false, v.Members)
	}

	for _, g := range d.Generics {
		if g.Name == "" || g.Constraint == "" {
			res.AddError(pos, diagnostic.CodeManifest, "type parameter needs a name and a constraint", d.Name)
		}
	}
}

func validateMembers(res *diagnostic.Diagnostics, path, typeName string, positional bool, members []MemberSpec) {
	names := map[string]bool{}

	for _, m := range members {
		pos := m.At(path)

		switch {
		case positional && m.Name != "":
			res.AddError(pos, diagnostic.CodeManifest,
				fmt.Sprintf("array member %s must not have a name", m.Name), typeName)
		case !positional && m.Name == "":
			res.AddError(pos, diagnostic.CodeManifest, "struct member has no name", typeName)
		case m.Name != "" && names[m.Name]:
			res.AddError(pos, diagnostic.CodeManifest, fmt.Sprintf("duplicate member %s", m.Name), typeName)
		}

		names[m.Name] = true

		for _, mk := range m.Markers {
			if !validMarker(mk) {
				res.AddError(pos, diagnostic.CodeManifest,
					fmt.Sprintf("unknown marker %q", mk)+match.DidYouMean(mk, markers), typeName)
			}
		}
	}
}

func validMarker(name string) bool {
	return slices.Contains(markers, name)
}
