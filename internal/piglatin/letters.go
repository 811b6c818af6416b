package piglatin

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// vowels are the letters that end a leading consonant cluster. y counts.
const vowels = "aeiouyAEIOUY"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

func indexFunc(rs []rune, f func(rune) bool) int {
	for i, r := range rs {
		if f(r) {
			return i
		}
	}
	return -1
}

func lastIndexFunc(rs []rune, f func(rune) bool) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if f(rs[i]) {
			return i
		}
	}
	return -1
}

// isCapitalized reports whether the first rune of s is an upper-case letter.
func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
