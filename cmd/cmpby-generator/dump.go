package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/gen"
)

// dumpConfig prints parsed inputs without addresses so dumps can be
// compared across runs.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newDumpCmd(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "dump [packages]",
		Short: "Print the parsed key lists of annotated types",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := a.units(cmd.Context(), args)
			if err != nil {
				return err
			}

			generator := gen.NewGenerator(a.cfg.Generator())
			found := false

			for _, unit := range units {
				for _, def := range unit.Definitions {
					if typeName != "" && def.Name != typeName {
						continue
					}

					found = true

					dump(cmd.OutOrStdout(), generator, def)
				}
			}

			if typeName != "" && !found {
				return fmt.Errorf("no annotated type %s", typeName)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "dump only this type")

	return cmd
}

func dump(w io.Writer, generator *gen.Generator, def *definition.Definition) {
	for _, d := range generator.Derive(def) {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s", def.Name, d.Kind)))

		if d.Err != nil {
			for _, diag := range diagnostic.FromError(d.Err) {
				fmt.Fprintln(w, formatDiagnostic(diag))
			}

			continue
		}

		dumpConfig.Fdump(w, d.Input.TopKeys, d.Input.Fields)
	}
}
