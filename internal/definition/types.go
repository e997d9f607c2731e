package definition

import (
	"go/token"
	"slices"
	"strings"

	"cmpby-generator/internal/common"
)

// Shape is the structural kind of an annotated type.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeStruct        // named struct with at least one field
	ShapeArray         // positional record: named array type
	ShapeUnion         // sealed interface with variant implementations
	ShapeUnit          // struct{}: nothing to compare
	ShapeOpenUnion     // interface without an unexported method
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeArray:
		return "array"
	case ShapeUnion:
		return "union"
	case ShapeUnit:
		return "unit"
	case ShapeOpenUnion:
		return "open union"
	default:
		return common.UnknownStr
	}
}

// Definition describes one annotated type.
type Definition struct {
	Name     string         // Type name as declared
	PkgPath  string         // Import path of the declaring package
	Shape    Shape          // Structural kind
	Members  []Member       // For structs and arrays
	Variants []Variant      // For unions, in declaration order
	Generics Generics       // Type parameters, passed through verbatim
	Pos      token.Position // Position of the type name
	// Directives are the type-level directives in source order.
	Directives []Directive
	// Detail explains ShapeUnknown and ShapeOpenUnion for diagnostics.
	Detail string
}

// Member is a struct field or an array position.
type Member struct {
	Name    string         // Field name; empty for positional members
	Index   int            // Declaration index among all members
	Type    string         // Type expression, informational only
	Markers []Marker       // Opt-in markers attached to the member
	Pos     token.Position // Position of the member
}

// Positional reports whether the member is addressed by index.
func (m Member) Positional() bool {
	return m.Name == ""
}

// Variant is one implementation of a sealed interface.
type Variant struct {
	Name    string         // Type name
	Ordinal int            // Declaration index among all variants
	Pointer bool           // Only *Name implements the union
	Address bool           // *Name implements the union as well as Name
	Generic bool           // Instantiated with the union's type parameters
	Members []Member       // Fields of the variant; empty for non-struct variants
	Pos     token.Position // Position of the variant type name
}

// Marker is one member-level directive. The bare form (//cmpby) opts the
// member in.
type Marker struct {
	Name string // "cmpby" or "hashby"
	Verb string // Empty for the opt-in form
	Pos  token.Position
}

// KeysVerb is the verb of a type-level key list directive.
const KeysVerb = "keys"

// IsOptIn reports whether m opts its member in for marker.
func (m Marker) IsOptIn(marker string) bool {
	return m.Name == marker && m.Verb == ""
}

// Directive is one type-level directive occurrence.
type Directive struct {
	Name string         // "cmpby" or "hashby"
	Verb string         // "" for the bare form, "keys" for a key list
	Args string         // Raw argument text for "keys"
	Pos  token.Position // Position of the first argument character
}

// Generics is the opaque type parameter list of a definition.
type Generics struct {
	Params []TypeParam
}

// TypeParam is a single type parameter.
type TypeParam struct {
	Name       string
	Constraint string
	// Imports are the import paths the constraint refers to.
	Imports []string
}

// IsEmpty reports whether the definition has no type parameters.
func (g Generics) IsEmpty() bool {
	return len(g.Params) == 0
}

// Declaration renders "[K comparable, V any]", or "" without parameters.
func (g Generics) Declaration() string {
	if g.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, len(g.Params))
	for _, p := range g.Params {
		parts = append(parts, p.Name+" "+p.Constraint)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Arguments renders "[K, V]", or "" without parameters.
func (g Generics) Arguments() string {
	if g.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, len(g.Params))
	for _, p := range g.Params {
		parts = append(parts, p.Name)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Imports returns the import paths used by the constraints, sorted.
func (g Generics) Imports() []string {
	var out []string
	for _, p := range g.Params {
		for _, imp := range p.Imports {
			if !slices.Contains(out, imp) {
				out = append(out, imp)
			}
		}
	}

	slices.Sort(out)

	return out
}

// Instance renders the type name with its parameters, e.g. "Pair[K, V]".
func (d *Definition) Instance() string {
	return d.Name + d.Generics.Arguments()
}

// Wants reports whether the definition requests generation for marker,
// i.e. carries at least one type-level directive with that name.
func (d *Definition) Wants(marker string) bool {
	for _, dir := range d.Directives {
		if dir.Name == marker {
			return true
		}
	}

	return false
}

// DirectivesFor returns the directives named marker in source order.
func (d *Definition) DirectivesFor(marker string) []Directive {
	var out []Directive
	for _, dir := range d.Directives {
		if dir.Name == marker {
			out = append(out, dir)
		}
	}

	return out
}

// CaseType renders the type used to match the variant in a type switch.
// unionArgs are the union's type arguments, applied to generic variants.
func (v Variant) CaseType(unionArgs string) string {
	name := v.Name
	if v.Generic {
		name += unionArgs
	}

	if v.Pointer {
		return "*" + name
	}

	return name
}

// CaseTypes renders every type a value of the variant can hold in the
// union: Name, and *Name when its address implements the union too.
func (v Variant) CaseTypes(unionArgs string) []string {
	name := v.CaseType(unionArgs)
	if v.Address && !v.Pointer {
		return []string{name, "*" + name}
	}

	return []string{name}
}
