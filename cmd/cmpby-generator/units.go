package main

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cmpby-generator/internal/analyze"
	"cmpby-generator/internal/gen"
	"cmpby-generator/internal/manifest"
)

// units loads the packages matching patterns and the configured manifest.
// Without either, the package of the working directory is loaded.
func (a *app) units(ctx context.Context, patterns []string) ([]*gen.Unit, error) {
	var units []*gen.Unit

	manifestPath := a.cfg.ManifestPath(a.dir)
	if len(patterns) == 0 && manifestPath == "" {
		patterns = []string{"."}
	}

	if len(patterns) > 0 {
		pkgs, err := analyze.NewAnalyzer(a.cfg.Analyzer(a.dir)).LoadPackages(ctx, patterns...)
		if err != nil {
			return nil, err
		}

		for _, pkg := range pkgs {
			a.logger.Debug("loaded package", "path", pkg.Path, "definitions", len(pkg.Definitions))
			units = append(units, pkg.Unit())
		}
	}

	if manifestPath != "" {
		unit, err := a.manifestUnit(manifestPath)
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return units, nil
}

func (a *app) manifestUnit(path string) (*gen.Unit, error) {
	f, err := manifest.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res := manifest.Validate(f)
	for _, w := range res.Warnings {
		a.logger.Warn(w.Message, "type", w.Type, "pos", w.Pos)
	}

	if err := res.Error(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s:\n%w", path, err)
	}

	a.logger.Debug("loaded manifest", "path", path, "definitions", len(f.Definitions))

	return f.Unit(a.cfg.Generator()), nil
}

// generate runs the generator on every unit concurrently. A unit that
// fails does not stop the others; all failures are returned together.
func (a *app) generate(ctx context.Context, units []*gen.Unit) ([]*gen.Result, error) {
	generator := gen.NewGenerator(a.cfg.Generator())

	results := make([]*gen.Result, len(units))
	errs := make([]error, len(units))

	var g errgroup.Group
	if a.cfg.Jobs > 0 {
		g.SetLimit(a.cfg.Jobs)
	}

	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			res, err := generator.Generate(unit)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", unit.PkgPath, err)
				return nil
			}

			results[i] = res

			return nil
		})
	}

	_ = g.Wait()

	return results, errors.Join(errs...)
}
