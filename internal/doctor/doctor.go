// Package doctor provides environment preflight checks for piglatin.
package doctor

import (
	"fmt"
	"io"

	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/dictionary"
	"github.com/example/go-piglatin/internal/piglatin"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// smokeWord is encoded and decoded again to check the configured setup.
const smokeWord = "pig"

// LoadFunc loads the dictionary at path. An empty path selects the
// built-in word list.
type LoadFunc func(path string) (*dictionary.Set, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// DictionaryPath is the configured word list. Empty means built-in.
	DictionaryPath string
	// LoadDictionary loads DictionaryPath. Defaults to dictionary.Open.
	LoadDictionary LoadFunc
	// Separators are the configured separators, names or literal
	// characters. Empty selects the translator defaults.
	Separators []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	load := cfg.LoadDictionary
	if load == nil {
		load = dictionary.Open
	}

	// ---- dictionary -------------------------------------------------------
	name := cfg.DictionaryPath
	if name == "" {
		name = "built-in"
	}
	dict, err := load(cfg.DictionaryPath)
	switch {
	case err != nil:
		res.fail(fmt.Sprintf("dictionary %s: %v", name, err))
		fmt.Fprintf(w, "%s dictionary %s: %v\n", FailMark, name, err)
		dict = nil
	case dict.Len() == 0:
		res.fail(fmt.Sprintf("dictionary %s: %v", name, dictionary.ErrEmpty))
		fmt.Fprintf(w, "%s dictionary %s: no words\n", FailMark, name)
		dict = nil
	default:
		fmt.Fprintf(w, "%s dictionary %s: %d words\n", PassMark, name, dict.Len())
	}

	// ---- separators -------------------------------------------------------
	seps, err := config.NormalizeSeparators(cfg.Separators)
	if err == nil {
		err = piglatin.ValidateSeparators(seps)
	}
	if err != nil {
		res.fail(fmt.Sprintf("separators: %v", err))
		fmt.Fprintf(w, "%s separators: %v\n", FailMark, err)
		seps = nil
	} else {
		fmt.Fprintf(w, "%s separators: %s\n", PassMark, describeSeparators(seps))
	}

	// ---- round trip -------------------------------------------------------
	if dict == nil {
		fmt.Fprintf(w, "%s round trip: skipped\n", PassMark)
		return res
	}
	if err := checkRoundTrip(dict, seps); err != nil {
		res.fail(fmt.Sprintf("round trip: %v", err))
		fmt.Fprintf(w, "%s round trip: %v\n", FailMark, err)
	} else if dict.Contains(smokeWord) {
		fmt.Fprintf(w, "%s round trip: %s\n", PassMark, smokeWord)
	} else {
		fmt.Fprintf(w, "%s round trip: encode only (%q not in dictionary)\n", PassMark, smokeWord)
	}

	return res
}

// checkRoundTrip encodes smokeWord and, when dict knows it, decodes it back.
func checkRoundTrip(dict *dictionary.Set, seps []string) error {
	tr, err := piglatin.New(dict, piglatin.WithSeparators(seps))
	if err != nil {
		return err
	}
	encoded := tr.Encode(smokeWord)
	if encoded == smokeWord {
		return fmt.Errorf("encode %q left it unchanged", smokeWord)
	}
	if !dict.Contains(smokeWord) {
		return nil
	}
	if got := tr.Decode(encoded); got != smokeWord {
		return fmt.Errorf("decode %q = %q, want %q", encoded, got, smokeWord)
	}
	return nil
}

func describeSeparators(seps []string) string {
	if len(seps) == 0 {
		return fmt.Sprintf("%q (default)", piglatin.DefaultSeparators())
	}
	return fmt.Sprintf("%q", seps)
}
