package main

import (
	"bytes"
	"errors"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/gen"
)

const notesDir = "../../examples/notes"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(t.Context())

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// writeModule creates a one-package module in a temporary directory.
func writeModule(t *testing.T, src string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module bad\n\ngo 1.25\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.go"), []byte(src), 0o644))

	return dir
}

func TestFormatDiagnostic(t *testing.T) {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeNoField,
		Message:  "no member named Y",
		Pos:      token.Position{Filename: "notes.go", Line: 3, Column: 14},
		Type:     "S",
	}

	out := formatDiagnostic(d)

	assert.Contains(t, out, "notes.go:3:14")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "["+diagnostic.CodeNoField+"]")
	assert.Contains(t, out, "S: no member named Y")
}

func TestFormatDiagnostic_NoPosition(t *testing.T) {
	out := formatDiagnostic(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Message:  "nothing to generate",
	})

	assert.NotContains(t, out, "[")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "nothing to generate")
}

func TestReport(t *testing.T) {
	units := []*gen.Unit{
		{PackageName: "a", Definitions: []*definition.Definition{{Name: "A"}, {Name: "B"}}},
		{PackageName: "b", Definitions: []*definition.Definition{{Name: "C"}}},
		{PackageName: "c", Definitions: []*definition.Definition{{Name: "D"}}},
	}

	first := &gen.Result{Failed: 1}
	first.Diagnostics.AddError(token.Position{}, diagnostic.CodeNoField, "no member named Y", "A")
	first.Diagnostics.AddWarning(token.Position{}, diagnostic.CodeUnresolvedType, "falls back", "B")

	second := &gen.Result{}

	var buf bytes.Buffer

	s := report(&buf, units, []*gen.Result{first, second, nil})

	assert.Equal(t, summary{definitions: 3, failed: 1, errors: 1, warnings: 1}, s)
	assert.Contains(t, buf.String(), "no member named Y")
	assert.Contains(t, buf.String(), "falls back")
}

func TestSummary_String(t *testing.T) {
	tests := []struct {
		name     string
		s        summary
		contains []string
		excludes []string
	}{
		{
			name:     "ok",
			s:        summary{definitions: 4},
			contains: []string{"4 definitions", "ok"},
			excludes: []string{"failed", "warnings"},
		},
		{
			name:     "failed",
			s:        summary{definitions: 2, failed: 1, errors: 3, warnings: 2},
			contains: []string{"2 definitions", "1 failed", "2 warnings"},
			excludes: []string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.s.String()

			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}

			for _, e := range tt.excludes {
				assert.NotContains(t, out, e)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("2 derivations failed")

	var err error = &exitError{code: 1, err: inner}

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, inner.Error(), err.Error())
}

func TestGen_DryRun(t *testing.T) {
	out, _, err := run(t, "gen", "-n", "-C", notesDir, ".")
	require.NoError(t, err)

	assert.Contains(t, out, "notes_cmpby.go")
	assert.Contains(t, out, "package notes")
	assert.Contains(t, out, "func (s S) Compare(other S) int {")
	assert.Contains(t, out, "func CompareNote(x, y Note) int {")
	assert.Contains(t, out, "func HashNote(h *maphash.Hash, x Note) {")
	assert.Contains(t, out, "func (r RGB) Hash(h *maphash.Hash) {")
}

func TestGen_OutputDir(t *testing.T) {
	outDir := t.TempDir()

	_, _, err := run(t, "gen", "-C", notesDir, "-o", outDir, ".")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "notes_cmpby.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (p Pair[K, V]) Compare(other Pair[K, V]) int {")
}

func TestCheck_Failure(t *testing.T) {
	dir := writeModule(t, `package bad

//cmpby:keys Y
type S struct{ X int }
`)

	out, errOut, err := run(t, "check", "-C", dir, ".")
	require.Error(t, err)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, errOut, "["+diagnostic.CodeUnknownKey+"]")
	assert.Contains(t, errOut, "S has no field or method Y")
}

func TestCheck_NoField(t *testing.T) {
	dir := writeModule(t, `package bad

// cmpby
type S struct{ X int }
`)

	out, errOut, err := run(t, "check", "-C", dir, ".")

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, errOut, "["+diagnostic.CodeNoField+"]")
}

func TestGen_UnknownKeyStandIn(t *testing.T) {
	dir := writeModule(t, `package bad

//cmpby:keys Y
type S struct{ X int }
`)

	out, _, err := run(t, "gen", "-n", "-C", dir, ".")
	require.Error(t, err)

	assert.Contains(t, out, "var _ = cmpbyGenerationFailedS")
	assert.NotContains(t, out, "cmp.Compare(s.Y")
}

func TestCheck_OK(t *testing.T) {
	out, _, err := run(t, "check", "-C", notesDir, ".")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestDump(t *testing.T) {
	out, _, err := run(t, "dump", "-C", notesDir, "--type", "RGB", ".")
	require.NoError(t, err)

	assert.Contains(t, out, "RGB compare")
	assert.Contains(t, out, "RGB hash")
	assert.Contains(t, out, "Luma")
}

func TestDump_UnknownType(t *testing.T) {
	_, _, err := run(t, "dump", "-C", notesDir, "--type", "Missing", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestExport(t *testing.T) {
	out, _, err := run(t, "export", "-C", notesDir)
	require.NoError(t, err)

	assert.Contains(t, out, "package: notes")
	assert.Contains(t, out, "name: Note")
	assert.Contains(t, out, "kind: union")
}
