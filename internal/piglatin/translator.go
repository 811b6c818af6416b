// Package piglatin translates text between English and Pig Latin.
//
// Encoding is deterministic. Decoding has to guess how many consonants were
// moved to the end of each word, and settles the guess with a dictionary and
// the capitalization of the candidates.
package piglatin

import (
	"errors"
	"strings"
)

var (
	// ErrNoDictionary is returned by New when no dictionary is supplied.
	ErrNoDictionary = errors.New("piglatin: dictionary is required")
	// ErrInvalidSeparator is returned for separators that are not exactly
	// one character long.
	ErrInvalidSeparator = errors.New("piglatin: invalid separator")
)

// Lookup reports whether a word is a known English word. Matching is exact
// and case-sensitive. Implementations must be safe for concurrent readers.
type Lookup interface {
	Contains(word string) bool
}

// DefaultSeparators returns the separators used when none are configured.
func DefaultSeparators() []string {
	return []string{" ", "-", "—", ".", ",", "\""}
}

// ValidateSeparators checks that every separator is a single character.
func ValidateSeparators(seps []string) error {
	_, err := newSeparatorSet(seps)
	return err
}

type options struct {
	separators []string
}

// Option configures a Translator.
type Option func(*options)

// WithSeparators sets the characters that delimit words. An empty list
// selects DefaultSeparators.
func WithSeparators(seps []string) Option {
	return func(o *options) { o.separators = seps }
}

// Translator converts text in both directions. It is immutable and safe for
// concurrent use.
type Translator struct {
	dict       Lookup
	separators []string
	set        separatorSet
}

// New returns a Translator backed by dict.
func New(dict Lookup, optFns ...Option) (*Translator, error) {
	if dict == nil {
		return nil, ErrNoDictionary
	}
	var opts options
	for _, fn := range optFns {
		fn(&opts)
	}
	return newTranslator(dict, opts.separators)
}

func newTranslator(dict Lookup, seps []string) (*Translator, error) {
	if len(seps) == 0 {
		seps = DefaultSeparators()
	}
	set, err := newSeparatorSet(seps)
	if err != nil {
		return nil, err
	}
	return &Translator{
		dict:       dict,
		separators: append([]string(nil), seps...),
		set:        set,
	}, nil
}

// Separators returns a copy of the separators in use.
func (t *Translator) Separators() []string {
	return append([]string(nil), t.separators...)
}

// Dictionary returns the word list used for decoding.
func (t *Translator) Dictionary() Lookup {
	return t.dict
}

// WithSeparators returns a Translator sharing t's dictionary but splitting
// words on seps. An empty list selects DefaultSeparators.
func (t *Translator) WithSeparators(seps []string) (*Translator, error) {
	return newTranslator(t.dict, seps)
}

// Segments splits text into separator and word runs.
func (t *Translator) Segments(text string) []Segment {
	return split(text, t.set)
}

// Encode translates English text to Pig Latin.
func (t *Translator) Encode(text string) string {
	return mapWords(text, t.set, EncodeWord)
}

// Decode translates Pig Latin text to English. Words that look encoded but
// cannot be decoded are wrapped in curly braces.
func (t *Translator) Decode(text string) string {
	return Render(t.DecodeWords(text))
}

// Piece is a separator run or a decoded word.
type Piece struct {
	Separator bool
	// Text holds the separator run. It is empty for words.
	Text string
	// Result holds the decoded word. It is the zero value for separators.
	Result Result
}

// DecodeWords decodes text word by word and keeps the separators in place.
func (t *Translator) DecodeWords(text string) []Piece {
	segs := split(text, t.set)
	out := make([]Piece, 0, len(segs))
	for _, seg := range segs {
		if seg.Separator {
			out = append(out, Piece{Separator: true, Text: seg.Text})
			continue
		}
		out = append(out, Piece{Result: DecodeWord(seg.Text, t.dict)})
	}
	return out
}

// Render joins pieces back into text.
func Render(pieces []Piece) string {
	var b strings.Builder
	for _, p := range pieces {
		if p.Separator {
			b.WriteString(p.Text)
			continue
		}
		b.WriteString(p.Result.String())
	}
	return b.String()
}

// CountUnresolved counts the words in pieces that could not be decoded.
func CountUnresolved(pieces []Piece) int {
	n := 0
	for _, p := range pieces {
		if !p.Separator && p.Result.Outcome == Unresolved {
			n++
		}
	}
	return n
}
