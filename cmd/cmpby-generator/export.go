package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cmpby-generator/internal/manifest"
)

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [package]",
		Short: "Describe the annotated types of a package as a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			units, err := a.units(cmd.Context(), args)
			if err != nil {
				return err
			}

			if len(units) != 1 {
				return errors.New("export takes exactly one package")
			}

			f := manifest.Export(units[0], a.cfg.Generator())

			if output != "" {
				if err := manifest.WriteFile(f, output); err != nil {
					return err
				}

				a.logger.Info("wrote", "file", output, "definitions", len(f.Definitions))

				return nil
			}

			data, err := manifest.Marshal(f)
			if err != nil {
				return fmt.Errorf("failed to marshal manifest: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to this file instead of stdout")

	return cmd
}
