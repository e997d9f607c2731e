package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(line, col int) token.Position {
	return token.Position{Filename: "notes.go", Line: line, Column: col}
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "full",
			diag:     Diagnostic{Code: CodeNoField, Message: "no field", Pos: pos(3, 6), Type: "S"},
			expected: "notes.go:3:6: S: [no_field] no field",
		},
		{
			name:     "no position",
			diag:     Diagnostic{Code: CodeShape, Message: "bad shape", Type: "S"},
			expected: "S: [shape] bad shape",
		},
		{
			name:     "message only",
			diag:     Diagnostic{Message: "failed"},
			expected: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestDiagnostics_Add(t *testing.T) {
	var d Diagnostics

	d.Add(Errorf(pos(1, 1), CodeMalformedKey, "bad %s", "key"))
	d.Add(Warningf(pos(2, 1), CodeUnresolvedType, "falls back"))
	d.Add(Diagnostic{Severity: DiagnosticInfo, Message: "note"})

	require.Len(t, d.Errors, 1)
	require.Len(t, d.Warnings, 1)
	require.Len(t, d.Infos, 1)
	assert.Equal(t, "bad key", d.Errors[0].Message)
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
}

func TestDiagnostics_AddErr(t *testing.T) {
	var d Diagnostics

	d.AddErr(nil, "S")
	assert.True(t, d.IsValid())

	d.AddErr(List{
		Errorf(pos(3, 14), CodeMalformedKey, "first"),
		Errorf(pos(3, 20), CodeMalformedKey, "second"),
	}, "S")
	d.AddErr(&Error{Diagnostic: Diagnostic{Severity: DiagnosticError, Code: CodeShape, Type: "T"}}, "S")
	d.AddErr(errors.New("plain"), "U")

	require.Len(t, d.Errors, 4)
	assert.Equal(t, "S", d.Errors[0].Type)
	assert.Equal(t, "T", d.Errors[2].Type, "type already set is kept")
	assert.Equal(t, CodeShape, d.Errors[2].Code)
	assert.Empty(t, d.Errors[3].Code)
	assert.Equal(t, "U", d.Errors[3].Type)
}

func TestDiagnostics_Sort(t *testing.T) {
	d := Diagnostics{Errors: []Diagnostic{
		{Code: CodeShape, Pos: pos(9, 1)},
		{Code: CodeNoField, Pos: pos(3, 6)},
		{Code: CodeDuplicateMarker, Pos: pos(3, 6)},
		{Code: CodeMalformedKey, Pos: token.Position{Filename: "a.go", Line: 20}},
	}}

	d.Sort()

	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	assert.Equal(t, []string{CodeMalformedKey, CodeDuplicateMarker, CodeNoField, CodeShape}, codes)
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddWarning(pos(1, 1), CodeUnresolvedType, "falls back", "S")
	require.NoError(t, d.Error())

	d.AddError(pos(2, 1), CodeNoField, "no field", "S")
	d.AddError(pos(4, 1), CodeShape, "bad shape", "T")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "notes.go:2:1: S: [no_field] no field\nnotes.go:4:1: T: [shape] bad shape", err.Error())

	d.Errors[0].Message = "changed"
	assert.Contains(t, err.Error(), "[no_field] no field", "error must not alias the collected slice")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError(pos(1, 1), CodeNoField, "a", "A")
	b.AddError(pos(2, 1), CodeShape, "b", "B")
	b.AddWarning(pos(3, 1), CodeUnresolvedType, "w", "B")

	a.Merge(b)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
}

func TestJoin(t *testing.T) {
	require.NoError(t, Join(nil, nil))
	require.NoError(t, List{}.Err())

	err := Join(
		nil,
		List{Errorf(pos(1, 1), CodeMalformedKey, "a")},
		&Error{Diagnostic: Errorf(pos(2, 1), CodeShape, "b")},
	)
	require.Error(t, err)

	diags := FromError(err)
	require.Len(t, diags, 2)
	assert.Equal(t, CodeShape, diags[1].Code)
}

func TestFromError_Wrapped(t *testing.T) {
	inner := List{Errorf(pos(1, 1), CodeDuplicateMarker, "dup")}
	err := fmt.Errorf("parsing S: %w", inner)

	assert.Nil(t, FromError(nil))
	assert.Len(t, FromError(err), 1)
	assert.True(t, HasCode(err, CodeDuplicateMarker))
	assert.False(t, HasCode(err, CodeNoField))
	assert.False(t, HasCode(nil, CodeNoField))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}
