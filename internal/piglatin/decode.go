package piglatin

import (
	"unicode"
)

// Outcome classifies what DecodeWord did with a word.
type Outcome int

const (
	// Unchanged means the word did not look like Pig Latin.
	Unchanged Outcome = iota
	// Decoded means an English word was recovered.
	Decoded
	// Unresolved means the word looked like Pig Latin but no candidate
	// could be chosen.
	Unresolved
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Decoded:
		return "decoded"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in JSON and other text encodings.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Candidate is one possible original word considered while decoding.
type Candidate struct {
	Word         string `json:"word"`
	InDictionary bool   `json:"in_dictionary"`
	Capitalized  bool   `json:"capitalized"`
}

// Result is the structured outcome of decoding a single word.
type Result struct {
	Input   string  `json:"input"`
	Output  string  `json:"output"`
	Outcome Outcome `json:"outcome"`
	// Candidates lists every rotation that was tried, in the order tried.
	// It is empty when no consonant cluster had to be guessed.
	Candidates []Candidate `json:"candidates,omitempty"`
}

// String renders the result as it appears in translated text. Unresolved
// words are wrapped in curly braces.
func (r Result) String() string {
	if r.Outcome == Unresolved {
		return "{" + r.Input + "}"
	}
	return r.Output
}

// Chosen returns the index into Candidates of the candidate that was used,
// or -1 when the word was not guessed or could not be resolved.
func (r Result) Chosen() int {
	if r.Outcome != Decoded {
		return -1
	}
	return choose(r.Candidates)
}

// emptyLookup knows no words.
type emptyLookup struct{}

func (emptyLookup) Contains(string) bool { return false }

// DecodeWord translates a single Pig Latin word back to English.
//
// A word is only treated as Pig Latin when it has more than two characters
// and its letters end in a lower-case "ay". When the consonant cluster that
// was moved to the back cannot be sized unambiguously, every split is tried
// and the first candidate that is both capitalized and in dict wins, then
// the first capitalized one, then the first one in dict.
func DecodeWord(word string, dict Lookup) Result {
	if dict == nil {
		dict = emptyLookup{}
	}
	unchanged := Result{Input: word, Output: word, Outcome: Unchanged}

	rs := []rune(word)
	first := indexFunc(rs, unicode.IsLetter)
	if first < 0 || len(rs) <= 2 {
		return unchanged
	}
	ay := lastIndexFunc(rs, unicode.IsLetter)
	if ay < 1 || rs[ay-1] != 'a' || rs[ay] != 'y' {
		return unchanged
	}

	s := make([]rune, 0, len(rs)-2)
	s = append(s, rs[:ay-1]...)
	s = append(s, rs[ay+1:]...)

	last := lastIndexFunc(s, unicode.IsLetter)
	if last < 0 {
		return unchanged
	}

	// "yay" suffix: the word started with a vowel.
	if s[last] == 'y' {
		out := string(s[:last]) + string(s[last+1:])
		return Result{Input: word, Output: out, Outcome: Decoded}
	}

	prefix, suffix := string(s[:first]), string(s[last+1:])

	lastVowel := lastIndexFunc(s, isVowel)
	if lastVowel < 0 {
		return Result{
			Input:   word,
			Output:  prefix + string(s[first:last+1]) + suffix,
			Outcome: Decoded,
		}
	}

	cands := rotations(s, first, last, lastVowel, dict)
	i := choose(cands)
	if i < 0 {
		return Result{Input: word, Outcome: Unresolved, Candidates: cands}
	}
	return Result{
		Input:      word,
		Output:     prefix + cands[i].Word + suffix,
		Outcome:    Decoded,
		Candidates: cands,
	}
}

// rotations moves every possible tail of consonants after the last vowel
// back to the front, longest tail first.
func rotations(s []rune, first, last, lastVowel int, dict Lookup) []Candidate {
	cands := make([]Candidate, 0, last-lastVowel)
	for j := lastVowel + 1; j <= last; j++ {
		w := string(s[j:last+1]) + string(s[first:j])
		cands = append(cands, Candidate{
			Word:         w,
			InDictionary: dict.Contains(w),
			Capitalized:  isCapitalized(w),
		})
	}
	return cands
}

// choose applies the tie-break order: known and capitalized, capitalized,
// known. Within a tier the earliest candidate wins. It returns the index of
// the winner, or -1 when no candidate qualifies.
func choose(cands []Candidate) int {
	tiers := []func(Candidate) bool{
		func(c Candidate) bool { return c.InDictionary && c.Capitalized },
		func(c Candidate) bool { return c.Capitalized },
		func(c Candidate) bool { return c.InDictionary },
	}
	for _, ok := range tiers {
		for i, c := range cands {
			if ok(c) {
				return i
			}
		}
	}
	return -1
}
