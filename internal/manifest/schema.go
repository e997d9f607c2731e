package manifest

import (
	"go/token"
)

// Kind names accepted in a manifest.
const (
	KindStruct = "struct"
	KindArray  = "array"
	KindUnion  = "union"
	KindUnit   = "unit"
	KindOpen   = "open"
)

// Marker names used as YAML keys. They are mapped to the configured
// directive names when definitions are built.
const (
	CompareKey = "cmpby"
	HashKey    = "hashby"
)

// File represents the root of a manifest.
type File struct {
	Version     string           `yaml:"version"`
	Package     string           `yaml:"package"`
	PkgPath     string           `yaml:"pkg_path,omitempty"`
	Dir         string           `yaml:"dir,omitempty"`
	Definitions []DefinitionSpec `yaml:"definitions"`

	// Path is the file the manifest was read from. It names the file in
	// diagnostics.
	Path string `yaml:"-"`
}

// DefinitionSpec describes one type.
type DefinitionSpec struct {
	Name     string        `yaml:"name"`
	Kind     string        `yaml:"kind,omitempty"`
	Derive   StringOrArray `yaml:"derive,omitempty"`
	Cmpby    StringOrArray `yaml:"cmpby,omitempty"`
	Hashby   StringOrArray `yaml:"hashby,omitempty"`
	Generics []GenericSpec `yaml:"generics,omitempty"`
	Members  []MemberSpec  `yaml:"members,omitempty"`
	Variants []VariantSpec `yaml:"variants,omitempty"`
	// Types maps a key, as written, to the Go type of its value.
	Types map[string]string `yaml:"types,omitempty"`

	Position `yaml:"-"`
}

// GenericSpec is one type parameter.
type GenericSpec struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// MemberSpec is a struct field, or an array position when Name is empty.
type MemberSpec struct {
	Name    string        `yaml:"name,omitempty"`
	Type    string        `yaml:"type,omitempty"`
	Markers StringOrArray `yaml:"markers,omitempty"`

	Position `yaml:"-"`
}

// VariantSpec is one implementation of a union, in declaration order.
type VariantSpec struct {
	Name    string       `yaml:"name"`
	Pointer bool         `yaml:"pointer,omitempty"`
	Generic bool         `yaml:"generic,omitempty"`
	Members []MemberSpec `yaml:"members,omitempty"`
	// Types maps a key of the variant to the Go type of its value.
	Types map[string]string `yaml:"types,omitempty"`

	Position `yaml:"-"`
}

// Position is the location of a node in the manifest.
type Position struct {
	Line   int
	Column int
}

// At converts p to a source position in filename.
func (p Position) At(filename string) token.Position {
	return token.Position{Filename: filename, Line: p.Line, Column: p.Column}
}

// StringOrArray represents a value that can be either a single string or an
// array of strings.
type StringOrArray []string
