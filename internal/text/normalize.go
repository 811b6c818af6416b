// Package text prepares text read from the command line or HTTP requests
// before it is handed to the translator.
package text

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Normalize normalizes line endings to \n and drops the single trailing
// newline that shells and editors leave behind. Other whitespace is kept.
// Empty or whitespace-only input is rejected.
func Normalize(s string) (string, error) {
	// CRLF → LF, then bare CR → LF.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.TrimSuffix(s, "\n")

	if strings.TrimSpace(s) == "" {
		return "", ErrEmptyText
	}

	return s, nil
}

// ComposeNFC returns s in Unicode normalization form C, so that a letter
// followed by combining accents becomes a single letter.
func ComposeNFC(s string) string {
	return norm.NFC.String(s)
}
