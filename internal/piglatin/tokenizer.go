package piglatin

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Segment is one run of the input text: either consecutive separator
// characters or a word made of everything between them.
type Segment struct {
	Text      string
	Separator bool
}

// separatorSet classifies runes as separators.
type separatorSet map[rune]struct{}

func newSeparatorSet(seps []string) (separatorSet, error) {
	set := make(separatorSet, len(seps))
	for _, s := range seps {
		r, size := utf8.DecodeRuneInString(s)
		if s == "" || size != len(s) || r == utf8.RuneError {
			return nil, fmt.Errorf("%w: %q (want exactly one character)", ErrInvalidSeparator, s)
		}
		set[r] = struct{}{}
	}
	return set, nil
}

func (s separatorSet) has(r rune) bool {
	_, ok := s[r]
	return ok
}

// split cuts text into maximal separator and word runs. Joining the Text of
// every returned segment reproduces text exactly.
func split(text string, seps separatorSet) []Segment {
	var out []Segment
	start := 0
	inSep := false
	for i, r := range text {
		sep := seps.has(r)
		if i == 0 {
			inSep = sep
			continue
		}
		if sep != inSep {
			out = append(out, Segment{Text: text[start:i], Separator: inSep})
			start, inSep = i, sep
		}
	}
	if start < len(text) {
		out = append(out, Segment{Text: text[start:], Separator: inSep})
	}
	return out
}

// mapWords replaces every word run of text with fn(word) and copies the
// separator runs through unchanged.
func mapWords(text string, seps separatorSet, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/2)
	for _, seg := range split(text, seps) {
		if seg.Separator {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(fn(seg.Text))
	}
	return b.String()
}
