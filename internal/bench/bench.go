// Package bench provides benchmarking primitives for the piglatin bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// SampleText is the English input used when no text is given.
const SampleText = "The quick brown fox jumps over the lazy dog. " +
	"Pig Latin is a language game in which words in English are altered, " +
	"usually by adding a fabricated suffix or by moving the onset of a word to the end.\n" +
	"To form it, move the first consonant cluster of each word to the end and add \"ay\"."

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing of a single translation run.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run
	Duration    time.Duration
	Words       int
	WordsPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// Durations extracts the run durations in order.
func Durations(runs []RunResult) []time.Duration {
	out := make([]time.Duration, len(runs))
	for i, r := range runs {
		out[i] = r.Duration
	}
	return out
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcWordsPerSecond returns words / elapsed seconds.
// Returns 0 if elapsed is zero to avoid division by zero.
func CalcWordsPerSecond(words int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(words) / elapsed.Seconds()
}

// MeanWordsPerSecond averages the throughput of all runs.
func MeanWordsPerSecond(runs []RunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.WordsPerSec
	}
	return total / float64(len(runs))
}

// CheckThroughputThreshold returns an error if meanWPS < threshold.
// A threshold of 0 disables the gate.
func CheckThroughputThreshold(meanWPS, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if meanWPS < threshold {
		return fmt.Errorf("mean throughput %.0f words/s is below threshold %.0f", meanWPS, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %12s\n", "Run", "Cold", "US", "Words", "Words/s")
	fmt.Fprintln(sb, strings.Repeat("-", 48))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10d  %8d  %12.0f\n",
			r.Index+1,
			cold,
			r.Duration.Microseconds(),
			r.Words,
			r.WordsPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 48))
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %8s  %12s  (min)\n", "", "", stats.Min.Microseconds(), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %8s  %12s  (mean)\n", "", "", stats.Mean.Microseconds(), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %8s  %12s  (max)\n", "", "", stats.Max.Microseconds(), "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationUS  int64   `json:"duration_us"`
	Words       int     `json:"words"`
	WordsPerSec float64 `json:"words_per_sec"`
}

type jsonStats struct {
	MinUS  int64 `json:"min_us"`
	MeanUS int64 `json:"mean_us"`
	MaxUS  int64 `json:"max_us"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinUS:  stats.Min.Microseconds(),
			MeanUS: stats.Mean.Microseconds(),
			MaxUS:  stats.Max.Microseconds(),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationUS:  r.Duration.Microseconds(),
			Words:       r.Words,
			WordsPerSec: r.WordsPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
