// Package scan collects the members that opted in to comparison or
// hashing, for records and for every variant of a union.
package scan

import (
	"errors"
	"fmt"
	"go/token"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/keyexpr"
)

// ErrNoField is matched by the error returned when no member is marked.
var ErrNoField = errors.New("no field marked")

// NoFieldError reports a member list without any marked member.
type NoFieldError struct {
	Marker string
	Pos    token.Position
}

// Error implements error.
func (e *NoFieldError) Error() string {
	return fmt.Sprintf("no member marked with //%s", e.Marker)
}

// Is makes errors.Is(err, ErrNoField) hold.
func (e *NoFieldError) Is(target error) bool {
	return target == ErrNoField
}

// VariantKeys are the marked members of one union variant.
type VariantKeys struct {
	Variant definition.Variant
	Keys    []keyexpr.Key
}

// Members returns one key per member carrying exactly one marker named
// marker, in declaration order. Members with more than one such marker are
// reported as duplicate_marker; scanning continues so every duplicate is
// reported. When no member carries the marker at all the result is a
// *NoFieldError positioned at pos.
func Members(members []definition.Member, marker string, pos token.Position) ([]keyexpr.Key, error) {
	var (
		keys   []keyexpr.Key
		errs   diagnostic.List
		marked bool
	)

	for _, m := range members {
		n := countMarkers(m, marker)
		if n == 0 {
			continue
		}

		marked = true

		if n > 1 {
			errs = append(errs, diagnostic.Errorf(m.Pos, diagnostic.CodeDuplicateMarker,
				"expected at most one //%s marker on %s, found %d", marker, memberLabel(m), n))

			continue
		}

		if m.Positional() {
			keys = append(keys, keyexpr.Positional(m.Index, m.Pos))
		} else {
			keys = append(keys, keyexpr.Named(m.Name, m.Pos))
		}
	}

	if !marked {
		return nil, &NoFieldError{Marker: marker, Pos: pos}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return keys, nil
}

// Variants scans every variant. A variant without marked members yields an
// empty key list; duplicate markers accumulate across all variants.
func Variants(variants []definition.Variant, marker string) ([]VariantKeys, error) {
	out := make([]VariantKeys, 0, len(variants))

	var errs diagnostic.List

	for _, v := range variants {
		keys, err := Members(v.Members, marker, v.Pos)

		switch {
		case errors.Is(err, ErrNoField):
			keys = nil
		case err != nil:
			errs = append(errs, diagnostic.FromError(err)...)
			continue
		}

		out = append(out, VariantKeys{Variant: v, Keys: keys})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return out, nil
}

// IsEmpty reports whether no variant contributes a key.
func IsEmpty(variants []VariantKeys) bool {
	for _, v := range variants {
		if len(v.Keys) > 0 {
			return false
		}
	}

	return true
}

func countMarkers(m definition.Member, marker string) int {
	n := 0
	for _, mk := range m.Markers {
		if mk.IsOptIn(marker) {
			n++
		}
	}

	return n
}

func memberLabel(m definition.Member) string {
	if m.Positional() {
		return fmt.Sprintf("member %d", m.Index)
	}

	return "field " + m.Name
}
