package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mockgraph/node"
)

type treeFlags struct {
	set  string
	root string
	dump bool
}

func newTreeCmd(global *globalFlags) *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Compile the declarations of a file and print the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, global, args[0])
			if err != nil {
				return err
			}

			rootName := flags.root
			if rootName == "" {
				rootName = s.file.Root
			}

			if rootName == "" {
				return errors.New("no root type: set root in the file or pass --root")
			}

			t, err := s.builder.Resolve(rootName)
			if err != nil {
				return err
			}

			lists, err := s.file.Lists(flags.set)
			if err != nil {
				return err
			}

			root, err := s.builder.Compile(t, lists)
			if err != nil {
				return err
			}

			if flags.dump {
				fmt.Fprint(cmd.OutOrStdout(), node.Dump(root))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), node.Format(root))

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.set, "set", "", "declaration set compiled after the defaults")
	cmd.Flags().StringVar(&flags.root, "root", "", "root type, overrides the root of the file")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "print every node field")

	return cmd
}
