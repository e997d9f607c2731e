package parse

import (
	"errors"
	"fmt"
	"go/token"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/match"
	"cmpby-generator/internal/scan"
)

// Options selects which directives drive the parse.
type Options struct {
	// Marker is the directive name, e.g. "cmpby".
	Marker string
	// Action names the derived operation in messages ("compare", "hash").
	Action string
	// Sentinel is the splice placeholder. Empty for hashing.
	Sentinel string
	// RejectedSentinel is refused with a dedicated message when Sentinel
	// is empty.
	RejectedSentinel string
}

// CompareOptions returns the options for comparator derivation.
func CompareOptions(marker, sentinel string) Options {
	return Options{Marker: marker, Action: "compare", Sentinel: sentinel}
}

// HashOptions returns the options for hasher derivation. The placeholder
// has no meaning for hashing and is rejected.
func HashOptions(marker, sentinel string) Options {
	return Options{Marker: marker, Action: "hash", RejectedSentinel: sentinel}
}

// FieldSpec holds the member-level keys of a record, or the per-variant
// keys of a union.
type FieldSpec struct {
	Union    bool
	Record   []keyexpr.Key
	Variants []scan.VariantKeys
}

// IsEmpty reports whether no member-level key exists.
func (f FieldSpec) IsEmpty() bool {
	if f.Union {
		return scan.IsEmpty(f.Variants)
	}

	return len(f.Record) == 0
}

// ParsedInput is the normalized form of one definition.
type ParsedInput struct {
	Definition *definition.Definition
	TopKeys    keyexpr.List
	Fields     FieldSpec
	Generics   definition.Generics
}

// Parse validates def against opts. Malformed keys, duplicate markers and
// unknown directives are returned together as a diagnostic.List; a bad
// shape or a definition without any key is returned alone as a
// *diagnostic.Error.
func Parse(def *definition.Definition, opts Options) (*ParsedInput, error) {
	if err := checkShape(def); err != nil {
		return nil, err
	}

	var errs diagnostic.List

	errs = append(errs, checkDirectives(def, opts)...)

	top, err := keyexpr.ParseDirectives(keyDirectives(def, opts.Marker), keyexpr.Options{
		Sentinel:         opts.Sentinel,
		RejectedSentinel: opts.RejectedSentinel,
	})
	if err != nil {
		errs = append(errs, diagnostic.FromError(err)...)
	}

	fields, noField, err := scanFields(def, opts.Marker)
	if err != nil {
		errs = append(errs, diagnostic.FromError(err)...)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if noField && len(top.Keys) == 0 {
		return nil, &diagnostic.Error{Diagnostic: diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeNoField,
			Message: fmt.Sprintf("no field to %s on; mark fields to %s on with //%s",
				opts.Action, opts.Action, opts.Marker),
			Pos:  def.Pos,
			Type: def.Name,
		}}
	}

	return &ParsedInput{
		Definition: def,
		TopKeys:    top,
		Fields:     fields,
		Generics:   def.Generics,
	}, nil
}

// scanFields reports noField when no member-level key exists at all.
func scanFields(def *definition.Definition, marker string) (FieldSpec, bool, error) {
	if def.Shape == definition.ShapeUnion {
		variants, err := scan.Variants(def.Variants, marker)
		if err != nil {
			return FieldSpec{Union: true}, false, err
		}

		return FieldSpec{Union: true, Variants: variants}, scan.IsEmpty(variants), nil
	}

	keys, err := scan.Members(def.Members, marker, def.Pos)
	if errors.Is(err, scan.ErrNoField) {
		return FieldSpec{}, true, nil
	}

	if err != nil {
		return FieldSpec{}, false, err
	}

	return FieldSpec{Record: keys}, false, nil
}

func checkShape(def *definition.Definition) error {
	switch def.Shape {
	case definition.ShapeStruct, definition.ShapeArray, definition.ShapeUnion:
		return nil
	}

	msg := "expected a sealed interface or a non-empty struct, got " + def.Shape.String()
	if def.Detail != "" {
		msg += " (" + def.Detail + ")"
	}

	return &diagnostic.Error{Diagnostic: diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeShape,
		Message:  msg,
		Pos:      def.Pos,
		Type:     def.Name,
	}}
}

// checkDirectives reports directive verbs that mean nothing for marker.
func checkDirectives(def *definition.Definition, opts Options) diagnostic.List {
	var errs diagnostic.List

	for _, dir := range def.DirectivesFor(opts.Marker) {
		switch {
		case dir.Verb == definition.KeysVerb:
		case dir.Verb == "" && dir.Args != "":
			errs = append(errs, diagnostic.Errorf(dir.Pos, diagnostic.CodeMalformedKey,
				"bare //%s takes no arguments; use //%s:%s", opts.Marker, opts.Marker, definition.KeysVerb))
		case dir.Verb == "":
		default:
			errs = append(errs, unknownVerb(dir.Pos, opts.Marker, dir.Verb, "type"))
		}
	}

	visit := func(members []definition.Member) {
		for _, m := range members {
			for _, mk := range m.Markers {
				if mk.Name == opts.Marker && mk.Verb != "" {
					errs = append(errs, unknownVerb(mk.Pos, opts.Marker, mk.Verb, "member"))
				}
			}
		}
	}

	visit(def.Members)

	for _, v := range def.Variants {
		visit(v.Members)
	}

	return errs
}

func unknownVerb(pos token.Position, marker, verb, where string) diagnostic.Diagnostic {
	want := "//" + marker
	hint := ""

	if where == "type" {
		want += " or //" + marker + ":" + definition.KeysVerb
		hint = match.DidYouMean(verb, []string{definition.KeysVerb})
	}

	return diagnostic.Errorf(pos, diagnostic.CodeUnknownDirective,
		"unknown %s directive //%s:%s; expected %s%s", where, marker, verb, want, hint)
}

func keyDirectives(def *definition.Definition, marker string) []definition.Directive {
	var out []definition.Directive
	for _, dir := range def.DirectivesFor(marker) {
		if dir.Verb == definition.KeysVerb {
			out = append(out, dir)
		}
	}

	return out
}
