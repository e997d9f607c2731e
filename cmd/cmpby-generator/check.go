package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Validate annotated types without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := a.units(cmd.Context(), args)
			if err != nil {
				return err
			}

			results, err := a.generate(cmd.Context(), units)
			s := report(cmd.ErrOrStderr(), units, results)

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), s)

			if s.errors > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d errors", s.errors)}
			}

			return nil
		},
	}
}
