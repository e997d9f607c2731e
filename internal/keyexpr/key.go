package keyexpr

import (
	"go/token"
	"strconv"
	"strings"
)

// Segment is one step of a key.
type Segment struct {
	Name  string // Member or method name; empty for a positional step
	Index int    // Position for a positional step
	Call  bool   // Zero-argument call of Name
}

// Key is a reference to a value reachable from an instance.
type Key struct {
	Segments []Segment
	// Pos is used for diagnostics only.
	Pos token.Position
}

// Named returns the key of a named member.
func Named(name string, pos token.Position) Key {
	return Key{Segments: []Segment{{Name: name}}, Pos: pos}
}

// Positional returns the key of the i-th member of a positional record.
func Positional(i int, pos token.Position) Key {
	return Key{Segments: []Segment{{Index: i}}, Pos: pos}
}

// Kind reports the shape of the key.
func (k Key) Kind() Kind {
	calls := false
	for _, s := range k.Segments {
		if s.Call {
			calls = true
		}
	}

	switch {
	case len(k.Segments) == 1 && k.Segments[0].Name == "":
		return KindPositional
	case len(k.Segments) == 1 && calls:
		return KindCall
	case len(k.Segments) == 1:
		return KindNamed
	case calls:
		return KindPathCall
	default:
		return KindPath
	}
}

// String renders the key as written, without a receiver.
func (k Key) String() string {
	return strings.TrimPrefix(k.Render(""), ".")
}

// Render renders the key applied to recv, e.g. "s.Meta.Owner()" or "s[0]".
func (k Key) Render(recv string) string {
	var sb strings.Builder

	sb.WriteString(recv)

	for _, s := range k.Segments {
		if s.Name == "" {
			sb.WriteString("[" + strconv.Itoa(s.Index) + "]")
			continue
		}

		sb.WriteString("." + s.Name)

		if s.Call {
			sb.WriteString("()")
		}
	}

	return sb.String()
}

// Equal reports whether two keys access the same value, ignoring position.
func (k Key) Equal(other Key) bool {
	if len(k.Segments) != len(other.Segments) {
		return false
	}

	for i := range k.Segments {
		if k.Segments[i] != other.Segments[i] {
			return false
		}
	}

	return true
}

// List is a parsed key list.
type List struct {
	Keys []Key
	// Splice is the index in Keys before which member-level keys are
	// inserted, or -1 when the list has no placeholder.
	Splice int
}

// HasSplice reports whether the list carries a splice position.
func (l List) HasSplice() bool {
	return l.Splice >= 0
}
