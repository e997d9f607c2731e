package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"cmpby-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeMalformedKey     = "malformed_key"
	CodeDuplicateMarker  = "duplicate_marker"
	CodeUnknownDirective = "unknown_directive"
	CodeNoField          = "no_field"
	CodeShape            = "shape"
	CodeUnresolvedType   = "unresolved_type"
	CodeUnknownKey       = "unknown_key"
	CodeManifest         = "manifest"
)

// Diagnostics holds all diagnostic information collected for a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos is the offending source position. It may be invalid for
	// definitions that did not come from Go source.
	Pos token.Position
	// Type is the definition the diagnostic belongs to (if any).
	Type string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Errorf builds an error diagnostic.
func Errorf(pos token.Position, code, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// Warningf builds a warning diagnostic.
func Warningf(pos token.Position, code, format string, args ...any) Diagnostic {
	d := Errorf(pos, code, format, args...)
	d.Severity = DiagnosticWarning

	return d
}

// Add files d under the slice matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(pos token.Position, code, message, typeName string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Type:     typeName,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(pos token.Position, code, message, typeName string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Type:     typeName,
	})
}

// AddErr records err as error diagnostics. A List is flattened, *Error keeps
// its code, anything else becomes a code-less error.
func (d *Diagnostics) AddErr(err error, typeName string) {
	if err == nil {
		return
	}

	for _, diag := range FromError(err) {
		if diag.Type == "" {
			diag.Type = typeName
		}

		d.Add(diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Sort orders every severity bucket by position, then code.
func (d *Diagnostics) Sort() {
	for _, bucket := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		slices.SortStableFunc(bucket, compareDiagnostics)
	}
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return List(slices.Clone(d.Errors))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	if d.Type != "" {
		prefix = append(prefix, d.Type+":")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}

// List is a non-empty set of error diagnostics reported together.
// The zero value is an empty list and must not be returned as an error.
type List []Diagnostic

// Error joins all diagnostics, one per line.
func (l List) Error() string {
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "\n")
}

// Err returns l as an error, or nil when it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}

	return l
}

// Join concatenates the diagnostics carried by errs. Nil errors are
// skipped. The result is nil when nothing was collected.
func Join(errs ...error) error {
	var out List
	for _, err := range errs {
		if err == nil {
			continue
		}

		out = append(out, FromError(err)...)
	}

	return out.Err()
}

// FromError unpacks err into diagnostics.
func FromError(err error) []Diagnostic {
	if err == nil {
		return nil
	}

	var list List
	if errors.As(err, &list) {
		return list
	}

	var single *Error
	if errors.As(err, &single) {
		return []Diagnostic{single.Diagnostic}
	}

	return []Diagnostic{{Severity: DiagnosticError, Message: err.Error()}}
}

// Error is a single diagnostic used as an error value. The structural
// failures (no field, shape) are reported this way since they stop the
// definition instead of accumulating.
type Error struct {
	Diagnostic
}

// Error implements error.
func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// HasCode reports whether err carries a diagnostic with the given code.
func HasCode(err error, code string) bool {
	for _, d := range FromError(err) {
		if d.Code == code {
			return true
		}
	}

	return false
}

func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Pos.Filename, b.Pos.Filename),
		cmp.Compare(a.Pos.Line, b.Pos.Line),
		cmp.Compare(a.Pos.Column, b.Pos.Column),
		cmp.Compare(a.Code, b.Code),
	)
}
