package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"cmpby-generator/internal/common"
	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/parse"
	"cmpby-generator/internal/strategy"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// CompareMarker is the directive that requests a comparator.
	CompareMarker string
	// HashMarker is the directive that requests a hasher.
	HashMarker string
	// Sentinel is the splice placeholder in comparator key lists.
	Sentinel string
	// FileSuffix is appended to the package name to form the file name.
	FileSuffix string
	// RuntimeImport is the import path of the runtime helper package.
	RuntimeImport string
	// OutputDir receives the .unformatted.go sidecar when formatting
	// fails. Empty disables the sidecar.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		CompareMarker:    "cmpby",
		HashMarker:       "hashby",
		Sentinel:         keyexpr.DefaultSentinel,
		FileSuffix:       "_cmpby.go",
		RuntimeImport:    "cmpby-generator/ordering",
		GenerateComments: true,
	}
}

// KeyTyper resolves the strategy of a key read from a value of the named
// type. owner is a definition or variant name of the unit's package.
type KeyTyper interface {
	KeyStrategy(owner string, key keyexpr.Key) strategy.Strategy
}

// Unit is the set of definitions of one package.
type Unit struct {
	PackageName string
	PkgPath     string
	// Dir is the directory the generated file belongs in.
	Dir         string
	Definitions []*definition.Definition
	Typer       KeyTyper
}

// Generator generates Go code from annotated definitions.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Config returns the generator configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.config
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "notes_cmpby.go").
	Filename string
	// Dir is the directory the file is written to.
	Dir string
	// Content is the formatted Go source code.
	Content []byte
}

// Result is the outcome of generating one unit.
type Result struct {
	// File is nil when no definition of the unit asked for generation.
	File        *GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Failed counts the derivations replaced by a stand-in.
	Failed int
}

// Generate emits the file of unit. Invalid definitions do not stop
// generation: they are reported in the result and replaced by a stand-in.
// The error is reserved for template and formatting failures.
func (g *Generator) Generate(unit *Unit) (*Result, error) {
	res := &Result{}
	file := &fileData{PackageName: unit.PackageName, imports: map[string]bool{}}

	defs := slices.Clone(unit.Definitions)
	slices.SortStableFunc(defs, comparePos)

	for _, def := range defs {
		for _, d := range g.Derive(def) {
			block, err := g.render(unit, d, file, res)
			if err != nil {
				return nil, fmt.Errorf("generating %s for %s: %w", d.Kind, def.Name, err)
			}

			file.Blocks = append(file.Blocks, block)
		}
	}

	res.Diagnostics.Sort()

	if len(file.Blocks) == 0 {
		return res, nil
	}

	file.Imports = importSpecs(file.imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, file); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := unit.PackageName + g.config.FileSuffix

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	res.File = &GeneratedFile{Filename: filename, Dir: unit.Dir, Content: formatted}

	return res, nil
}

// DeriveKind names a derived routine.
type DeriveKind int

const (
	DeriveCompare DeriveKind = iota
	DeriveHash
)

// String returns a human-readable representation of the DeriveKind.
func (k DeriveKind) String() string {
	switch k {
	case DeriveCompare:
		return "compare"
	case DeriveHash:
		return "hash"
	default:
		return common.UnknownStr
	}
}

// Derivation is one requested routine of a definition, parsed.
type Derivation struct {
	Kind       DeriveKind
	Definition *definition.Definition
	Input      *parse.ParsedInput
	// Err is set instead of Input when validation failed.
	Err error
}

// Derive parses every routine def asks for, comparator first.
func (g *Generator) Derive(def *definition.Definition) []Derivation {
	var out []Derivation

	if def.Wants(g.config.CompareMarker) {
		in, err := parse.Parse(def, parse.CompareOptions(g.config.CompareMarker, g.config.Sentinel))
		out = append(out, Derivation{Kind: DeriveCompare, Definition: def, Input: in, Err: err})
	}

	if def.Wants(g.config.HashMarker) {
		in, err := parse.Parse(def, parse.HashOptions(g.config.HashMarker, g.config.Sentinel))
		out = append(out, Derivation{Kind: DeriveHash, Definition: def, Input: in, Err: err})
	}

	return out
}

func (g *Generator) marker(kind DeriveKind) string {
	if kind == DeriveHash {
		return g.config.HashMarker
	}

	return g.config.CompareMarker
}

func (g *Generator) render(unit *Unit, d Derivation, file *fileData, res *Result) (string, error) {
	if d.Err != nil {
		res.Diagnostics.AddErr(d.Err, d.Definition.Name)
		res.Failed++

		return g.renderFailure(d)
	}

	b := &builder{
		config: g.config,
		unit:   unit,
		def:    d.Definition,
		input:  d.Input,
		rt:     common.PkgAlias(g.config.RuntimeImport),
		diags:  &res.Diagnostics,
		kind:   d.Kind,
	}

	var (
		block string
		err   error
	)

	switch {
	case d.Kind == DeriveCompare && d.Definition.Shape == definition.ShapeUnion:
		block, err = b.unionCompare()
	case d.Kind == DeriveCompare:
		block, err = b.recordCompare()
	case d.Definition.Shape == definition.ShapeUnion:
		block, err = b.unionHash()
	default:
		block, err = b.recordHash()
	}

	if err != nil {
		return "", err
	}

	if len(b.unreadable) > 0 {
		d.Err = b.unreadable

		return g.render(unit, d, file, res)
	}

	for _, imp := range append(b.needs.imports(g.config.RuntimeImport), b.extra...) {
		file.imports[imp] = true
	}

	return block, nil
}

func (g *Generator) renderFailure(d Derivation) (string, error) {
	data := failureData{
		Type:   d.Definition.Name,
		Action: d.Kind.String(),
		Ident:  g.marker(d.Kind) + "GenerationFailed" + common.ExportedName(d.Definition.Name),
	}

	for _, diag := range diagnostic.FromError(d.Err) {
		data.Lines = append(data.Lines, shortDiagnostic(diag))
	}

	return execute(failureTemplate, data)
}

// shortDiagnostic renders diag without the directory of its file so the
// output does not depend on where the tool runs.
func shortDiagnostic(diag diagnostic.Diagnostic) string {
	msg := fmt.Sprintf("[%s] %s", diag.Code, diag.Message)
	if !diag.Pos.IsValid() {
		return msg
	}

	return fmt.Sprintf("%s:%d:%d: %s", filepath.Base(diag.Pos.Filename), diag.Pos.Line, diag.Pos.Column, msg)
}

// importSpecs sorts the collected imports. The runtime package is
// referred to by its common.PkgAlias name.
func importSpecs(set map[string]bool) []importSpec {
	specs := make([]importSpec, 0, len(set))
	for path := range set {
		specs = append(specs, importSpec{Path: path})
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return specs
}

func comparePos(a, b *definition.Definition) int {
	if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
		return c
	}

	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line - b.Pos.Line
	}

	return a.Pos.Column - b.Pos.Column
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
