package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cmpby-generator/internal/gen"
)

func newGenCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate comparison and hashing code",
		Long: `Generate writes <package>_cmpby.go next to every package that has
annotated types. A definition that fails validation is replaced by a
stand-in that does not compile, and the command exits with status 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := a.units(cmd.Context(), args)
			if err != nil {
				return err
			}

			results, genErr := a.generate(cmd.Context(), units)
			s := report(cmd.ErrOrStderr(), units, results)

			var files []gen.GeneratedFile
			for _, res := range results {
				if res != nil && res.File != nil {
					files = append(files, *res.File)
				}
			}

			if dryRun {
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", f.Path(), f.Content)
				}
			} else {
				if err := gen.WriteFiles(files, a.cfg.OutputDir); err != nil {
					return err
				}

				for _, f := range files {
					a.logger.Info("wrote", "file", a.outputPath(f))
				}
			}

			if genErr != nil {
				return genErr
			}

			a.logger.Info(s.String())

			if s.failed > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d derivations failed", s.failed)}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print generated files instead of writing them")
	cmd.Flags().StringP("output-dir", "o", "", "write every file to this directory")
	cmd.Flags().IntP("jobs", "j", 0, "packages generated at once (0 for no limit)")

	return cmd
}

func (a *app) outputPath(f gen.GeneratedFile) string {
	if a.cfg.OutputDir != "" {
		return filepath.Join(a.cfg.OutputDir, f.Filename)
	}

	return f.Path()
}
