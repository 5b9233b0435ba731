package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"pinnotify-go/notify"
)

var (
	runOpts = struct {
		file    string
		verbose bool
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a scenario file",
		Long:  "Subscribe the scenario's pins, execute its script and exit non-zero if any expect line fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenarioFile(runOpts.file)
			if err != nil {
				return err
			}
			log := slog.New(slog.DiscardHandler)
			if runOpts.verbose {
				log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			var out io.Writer = io.Discard
			if runOpts.verbose {
				out = cmd.OutOrStdout()
			}
			r, err := NewRunner(sc.Board, out, log)
			if err != nil {
				return err
			}
			err = r.Run(sc)
			fmt.Fprintf(cmd.OutOrStdout(), "board=%s delivered=%d failed=%d\n", sc.Board, r.Controller().Delivered(), r.Failed())
			return err
		},
	}

	conditionsCmd = &cobra.Command{
		Use:   "conditions",
		Short: "List trigger condition names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range notify.Conditions() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}
)

func init() {
	runCmd.Flags().StringVarP(&runOpts.file, "file", "f", "", "scenario file (YAML)")
	runCmd.Flags().BoolVarP(&runOpts.verbose, "verbose", "v", false, "print every step and debug logs")
	_ = runCmd.MarkFlagRequired("file")
}
