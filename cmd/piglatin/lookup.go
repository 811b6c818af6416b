package main

import (
	"fmt"
	"io"

	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/dictionary"
	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Report whether words are in the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runLookup(cfg, args, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runLookup(cfg config.Config, words []string, stdout io.Writer) error {
	dict, err := dictionary.Open(cfg.Paths.DictionaryPath)
	if err != nil {
		return err
	}
	for _, w := range words {
		state := "unknown"
		if dict.Contains(w) {
			state = "known"
		}
		if _, err := fmt.Fprintf(stdout, "%s\t%s\n", w, state); err != nil {
			return err
		}
	}
	return nil
}
