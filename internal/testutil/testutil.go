// Package testutil provides shared fixtures for tests across packages.
//
// Typical usage:
//
//	func TestDecodeParagraph(t *testing.T) {
//	    path := testutil.WriteWordList(t, testutil.ParagraphWords()...)
//	    ...
//	}
package testutil

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ParagraphEnglish is the reference English paragraph.
const ParagraphEnglish = "The text you are currently reading has been generated for the sole purpose of testing. " +
	"For all intents and purposes, this text will provide metrics as to how well the translator " +
	"to English and the translator to Pig Latin are performing."

// ParagraphPigLatin is ParagraphEnglish in Pig Latin.
const ParagraphPigLatin = "eThay exttay youyay areyay urrentlycay eadingray ashay eenbay eneratedgay " +
	"orfay ethay olesay urposepay ofyay estingtay. orFay allyay intentsyay andyay urposespay, " +
	"isthay exttay illway ovidepray etricsmay asyay otay owhay ellway ethay anslatortray " +
	"otay Englishyay andyay ethay anslatortray otay igPay atinLay areyay erformingpay."

// ParagraphWords returns every distinct word of ParagraphEnglish, exactly as
// written there.
func ParagraphWords() []string {
	fields := strings.FieldsFunc(ParagraphEnglish, func(r rune) bool {
		return r == ' ' || r == '.' || r == ','
	})

	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			words = append(words, f)
		}
	}
	return words
}

// WriteWordList writes words, one per line, to a file in a temporary
// directory and returns its path.
func WriteWordList(tb testing.TB, words ...string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "words.txt")
	data := strings.Join(words, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		tb.Fatalf("write word list: %v", err)
	}
	return path
}

// FreeAddr returns a loopback address with a port that was free a moment
// ago.
func FreeAddr(tb testing.TB) string {
	tb.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}
