package piglatin

import (
	"strings"
	"unicode"
)

// EncodeWord translates a single English word to Pig Latin.
//
// Words starting with a vowel get "yay" appended to their letters. Otherwise
// the consonants before the first vowel move behind the last letter, in
// order, followed by "ay". Anything before the first letter or after the
// last letter is kept as is. Words without letters are returned unchanged.
func EncodeWord(word string) string {
	rs := []rune(word)

	first := indexFunc(rs, unicode.IsLetter)
	if first < 0 {
		return word
	}
	last := lastIndexFunc(rs, unicode.IsLetter)
	vowel := indexFunc(rs, isVowel)

	var b strings.Builder
	b.Grow(len(word) + 3)
	b.WriteString(string(rs[:first]))

	switch {
	case first == vowel:
		b.WriteString(string(rs[first : last+1]))
		b.WriteString("yay")
	case vowel >= 0:
		b.WriteString(string(rs[vowel : last+1]))
		b.WriteString(string(rs[first:vowel]))
		b.WriteString("ay")
	default:
		b.WriteString(string(rs[first : last+1]))
		b.WriteString("ay")
	}

	b.WriteString(string(rs[last+1:]))
	return b.String()
}
