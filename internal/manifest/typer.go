package manifest

import (
	"fmt"

	"cmpby-generator/internal/common"
	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/match"
	"cmpby-generator/internal/strategy"
)

// Typer types keys from the hints and member types of a manifest.
type Typer struct {
	owners map[string]owner
	known  strategy.KnownMap
}

// owner is a definition or a variant keys are read from.
type owner struct {
	members []MemberSpec
	types   map[string]string
	params  map[string]string
}

func newTyper(f *File, defs []*definition.Definition, config gen.GeneratorConfig) *Typer {
	t := &Typer{owners: map[string]owner{}, known: known(defs, config)}

	for _, d := range f.Definitions {
		params := map[string]string{}
		for _, g := range d.Generics {
			params[g.Name] = g.Constraint
		}

		t.owners[d.Name] = owner{members: d.Members, types: d.Types, params: params}

		for _, v := range d.Variants {
			t.owners[v.Name] = owner{members: v.Members, types: v.Types, params: params}
		}
	}

	return t
}

// KeyStrategy implements gen.KeyTyper.
func (t *Typer) KeyStrategy(name string, key keyexpr.Key) strategy.Strategy {
	o, ok := t.owners[name]
	if !ok {
		return strategy.Fallback(common.UnknownStr, name+" is not in the manifest")
	}

	typ := o.types[key.String()]
	if typ == "" {
		typ = o.memberType(key)
	}

	if typ == "" {
		return strategy.Fallback(common.UnknownStr,
			fmt.Sprintf("no type for `%s` in the manifest", key)+o.suggest(key))
	}

	return strategy.FromTypeString(typ, o.params, t.known)
}

// memberType is the declared type of a key naming a single member.
func (o owner) memberType(key keyexpr.Key) string {
	if len(key.Segments) != 1 || key.Segments[0].Call {
		return ""
	}

	s := key.Segments[0]
	if s.Name == "" {
		if s.Index < len(o.members) {
			return o.members[s.Index].Type
		}

		return ""
	}

	for _, m := range o.members {
		if m.Name == s.Name {
			return m.Type
		}
	}

	return ""
}

// suggest hints at a member when key names one that does not exist.
func (o owner) suggest(key keyexpr.Key) string {
	if len(key.Segments) != 1 || key.Segments[0].Call || key.Segments[0].Name == "" {
		return ""
	}

	names := make([]string, 0, len(o.members))
	for _, m := range o.members {
		names = append(names, m.Name)
	}

	return match.DidYouMean(key.Segments[0].Name, names)
}
