package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/go-piglatin/internal/bench"
	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/piglatin"
	"github.com/example/go-piglatin/internal/server"
	"github.com/example/go-piglatin/internal/text"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	Text      string
	Direction string
	Runs      int
	Format    string
	MinWPS    float64
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark translation throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runBenchCommand(cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "Text to translate on each run (defaults to a sample paragraph)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "decode", "Translation to measure: encode|decode")
	cmd.Flags().IntVar(&opts.Runs, "runs", 5, "Number of runs")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&opts.MinWPS, "min-wps", 0, "Exit non-zero if mean words/s falls below this value (0 = disabled)")

	return cmd
}

func runBenchCommand(cfg config.Config, opts benchOptions, stdout io.Writer) error {
	if opts.Runs < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}
	if opts.Format != "table" && opts.Format != "json" {
		return fmt.Errorf("--format must be 'table' or 'json'")
	}

	tr, err := server.NewTranslator(cfg)
	if err != nil {
		return err
	}

	input := opts.Text
	if strings.TrimSpace(input) == "" {
		input = bench.SampleText
		if opts.Direction == "decode" {
			input = text.MapLines(input, tr.Encode)
		}
	}

	var translate func(string) string
	switch opts.Direction {
	case "encode":
		translate = func(s string) string { return text.MapLines(s, tr.Encode) }
	case "decode":
		translate = func(s string) string { return piglatin.Render(text.DecodeLines(tr, s)) }
	default:
		return fmt.Errorf("--direction must be 'encode' or 'decode'")
	}

	results := runBench(input, opts.Runs, countWords(tr, input), translate)
	stats := bench.ComputeStats(bench.Durations(results))

	switch opts.Format {
	case "json":
		bench.FormatJSON(results, stats, stdout)
	default:
		bench.FormatTable(results, stats, stdout)
	}

	return bench.CheckThroughputThreshold(bench.MeanWordsPerSecond(results), opts.MinWPS)
}

func runBench(input string, runs, words int, translate func(string) string) []bench.RunResult {
	results := make([]bench.RunResult, 0, runs)

	for i := range runs {
		start := time.Now()
		_ = translate(input)
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    dur,
			Words:       words,
			WordsPerSec: bench.CalcWordsPerSecond(words, dur),
		})
	}

	return results
}

func countWords(tr *piglatin.Translator, s string) int {
	n := 0
	for _, line := range text.Lines(s) {
		for _, seg := range tr.Segments(line) {
			if !seg.Separator {
				n++
			}
		}
	}
	return n
}
