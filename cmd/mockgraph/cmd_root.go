package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"mockgraph"
	"mockgraph/declfile"
	"mockgraph/options"
	"mockgraph/store"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   appName + " [command]",
		Short: "Compile and check object graph declarations",
		Long: appName + " compiles path declarations such as \"customer.email = a@b.c\"\n" +
			"into trees and builds substitute graphs of the store domain from them.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log compilation steps to stderr")

	rootCmd.AddCommand(newTreeCmd(&flags))
	rootCmd.AddCommand(newCheckCmd(&flags))

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// session is what every subcommand starts from: a loaded file and a builder
// over the store registry.
type session struct {
	file    *declfile.File
	builder *mockgraph.Builder
}

func open(cmd *cobra.Command, flags *globalFlags, path string) (*session, error) {
	f, err := declfile.Load(path)
	if err != nil {
		return nil, err
	}

	reg, err := store.Registry()
	if err != nil {
		return nil, err
	}

	log := newLogger(cmd.ErrOrStderr(), flags.verbose)
	log.Debug("loaded declarations", "path", path, "root", f.Root, "sets", len(f.Sets))

	b := mockgraph.New(reg,
		options.WithNamespaces("store"),
		options.WithLogger(log),
	)

	return &session{file: f, builder: b}, nil
}
