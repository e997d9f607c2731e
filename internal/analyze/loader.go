package analyze

import (
	"cmp"
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/strategy"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Config controls which directives the Analyzer reads.
type Config struct {
	// CompareMarker and HashMarker are the directive names.
	CompareMarker string
	HashMarker    string
	// GeneratedSuffix marks files written by the generator. Type errors
	// inside them are ignored: a stale or failed output must not prevent
	// regenerating it.
	GeneratedSuffix string
	// Dir is the working directory for pattern resolution. Empty means
	// the current directory.
	Dir string
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		CompareMarker:   "cmpby",
		HashMarker:      "hashby",
		GeneratedSuffix: "_cmpby.go",
	}
}

// Analyzer loads Go packages and extracts annotated definitions.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config}
}

func (a *Analyzer) markers() []string {
	return []string{a.config.CompareMarker, a.config.HashMarker}
}

// LoadPackages loads the packages matching patterns and extracts their
// definitions. Patterns are standard Go package patterns (e.g., "./...",
// "cmpby-generator/examples/notes"). The result is sorted by import path.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.config.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.inGeneratedFile(e) {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		out = append(out, p)
	}

	slices.SortFunc(out, func(x, y *Package) int {
		return cmp.Compare(x.Path, y.Path)
	})

	return out, nil
}

func (a *Analyzer) inGeneratedFile(e packages.Error) bool {
	if a.config.GeneratedSuffix == "" || e.Kind != packages.TypeError {
		return false
	}

	file, _, _ := strings.Cut(e.Pos, ":")

	return strings.HasSuffix(file, a.config.GeneratedSuffix)
}

// typeDecl is the syntax of one type declaration.
type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup // Doc of the enclosing GenDecl, if unparenthesised
}

// processPackage extracts the definitions of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) (*Package, error) {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("no type information for %s", pkg.PkgPath)
	}

	p := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Known: strategy.KnownMap{},
		types: pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	decls := map[string]typeDecl{}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				td := typeDecl{spec: ts}

				if !gen.Lparen.IsValid() {
					td.doc = gen.Doc
				}

				decls[ts.Name.Name] = td
			}
		}
	}

	e := &extractor{
		fset:    pkg.Fset,
		pkg:     pkg.Types,
		decls:   decls,
		markers: a.markers(),
	}

	for name, td := range decls {
		dirs := directives(pkg.Fset, e.markers, td.doc, td.spec.Doc, td.spec.Comment)
		if len(dirs) == 0 {
			continue
		}

		def := e.definition(name, dirs)
		p.Definitions = append(p.Definitions, def)

		if def.Shape == definition.ShapeStruct || def.Shape == definition.ShapeArray || def.Shape == definition.ShapeUnion {
			p.Known[name] = strategy.Generated{
				Compare: def.Wants(a.config.CompareMarker),
				Hash:    def.Wants(a.config.HashMarker),
				Union:   def.Shape == definition.ShapeUnion,
			}
		}
	}

	slices.SortFunc(p.Definitions, func(x, y *definition.Definition) int {
		return cmp.Or(
			cmp.Compare(x.Pos.Filename, y.Pos.Filename),
			cmp.Compare(x.Pos.Offset, y.Pos.Offset),
		)
	})

	return p, nil
}
