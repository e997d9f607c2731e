package analyze

import (
	"go/types"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/strategy"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "cmpby-generator/examples/notes"
	Name    string // e.g., "Note"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Package holds the annotated definitions of one loaded package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory of the package sources
	// Definitions are sorted by source position.
	Definitions []*definition.Definition
	// Known records what will be generated for each definition.
	Known strategy.KnownMap

	types *types.Package
}

// Definition returns the definition named name, or nil.
func (p *Package) Definition(name string) *definition.Definition {
	for _, def := range p.Definitions {
		if def.Name == name {
			return def
		}
	}

	return nil
}

// ID returns the identifier of a type of the package.
func (p *Package) ID(name string) TypeID {
	return TypeID{PkgPath: p.Path, Name: name}
}

// Unit returns the generator input of the package. The package types its
// own keys.
func (p *Package) Unit() *gen.Unit {
	return &gen.Unit{
		PackageName: p.Name,
		PkgPath:     p.Path,
		Dir:         p.Dir,
		Definitions: p.Definitions,
		Typer:       p,
	}
}
