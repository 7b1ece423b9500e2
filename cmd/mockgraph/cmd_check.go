package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mockgraph/internal/diagnostic"
)

func newCheckCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Build every declaration set of a file and report all problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, global, args[0])
			if err != nil {
				return err
			}

			diags := check(s)
			for _, d := range diags.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d.Severity, d.String())
			}

			if diags.HasErrors() {
				return fmt.Errorf("%s: %d problem(s) found", args[0], len(diags.Errors))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])

			return nil
		},
	}
}

// check builds the defaults alone and then each set on top of them.
func check(s *session) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if s.file.Root == "" {
		diags.AddErr("", errors.New("no root type"))
		return diags
	}

	t, err := s.builder.Resolve(s.file.Root)
	if err != nil {
		diags.AddErr("", err)
		return diags
	}

	if s.file.IsEmpty() {
		diags.AddWarning("", "", "the file declares nothing")
	}

	sets := append([]string{""}, s.file.SetNames()...)
	for _, set := range sets {
		lists, err := s.file.Lists(set)
		if err != nil {
			diags.AddErr(set, err)
			continue
		}

		if _, err := s.builder.Build(t, lists); err != nil {
			diags.AddErr(set, err)
		}
	}

	diags.AddInfo("", "", fmt.Sprintf("%d set(s) checked", len(sets)))

	return diags
}
