package text

import (
	"strings"

	"github.com/example/go-piglatin/internal/piglatin"
)

// Lines splits s on \n. Joining the result with \n reproduces s.
func Lines(s string) []string {
	return strings.Split(s, "\n")
}

// MapLines applies fn to every line of s and joins the results with \n.
func MapLines(s string, fn func(string) string) string {
	lines := Lines(s)
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// WordDecoder decodes one line of text word by word.
type WordDecoder interface {
	DecodeWords(line string) []piglatin.Piece
}

// DecodeLines decodes every line of s and keeps the line breaks as
// separator pieces, so that piglatin.Render reproduces the layout.
func DecodeLines(d WordDecoder, s string) []piglatin.Piece {
	var out []piglatin.Piece
	for i, line := range Lines(s) {
		if i > 0 {
			out = append(out, piglatin.Piece{Separator: true, Text: "\n"})
		}
		out = append(out, d.DecodeWords(line)...)
	}
	return out
}
