package config

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// separatorNames lets config files and flags name separators that are
// awkward to write literally.
var separatorNames = map[string]string{
	"space":     " ",
	"tab":       "\t",
	"newline":   "\n",
	"hyphen":    "-",
	"dash":      "-",
	"em-dash":   "—",
	"emdash":    "—",
	"en-dash":   "–",
	"period":    ".",
	"comma":     ",",
	"quote":     "\"",
	"semicolon": ";",
	"colon":     ":",
	"slash":     "/",
}

// NormalizeSeparators resolves separator names to their characters and
// checks that every entry is a single character. An empty list stays empty,
// which selects the translator defaults.
func NormalizeSeparators(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if utf8.ValidString(s) && utf8.RuneCountInString(s) == 1 {
			out = append(out, s)
			continue
		}
		name := strings.ToLower(strings.TrimSpace(s))
		if c, ok := separatorNames[name]; ok {
			out = append(out, c)
			continue
		}
		return nil, fmt.Errorf(
			"invalid separator %q (expected one character or one of %s)",
			s,
			strings.Join(separatorNameList(), "|"),
		)
	}
	return out, nil
}

func separatorNameList() []string {
	names := make([]string, 0, len(separatorNames))
	for n := range separatorNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
