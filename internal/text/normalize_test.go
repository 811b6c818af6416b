package text

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "passthrough clean text",
			input: "Hello world",
			want:  "Hello world",
		},
		{
			name:  "drops one trailing newline",
			input: "Hello world\n",
			want:  "Hello world",
		},
		{
			name:  "keeps a second trailing newline",
			input: "Hello\n\n",
			want:  "Hello\n",
		},
		{
			name:  "keeps leading and trailing spaces",
			input: "  Hello  ",
			want:  "  Hello  ",
		},
		{
			name:  "normalizes CRLF to LF",
			input: "line one\r\nline two\r\n",
			want:  "line one\nline two",
		},
		{
			name:  "normalizes bare CR to LF",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:  "normalizes mixed line endings",
			input: "a\r\nb\rc\nd",
			want:  "a\nb\nc\nd",
		},
		{
			name:    "rejects empty string",
			input:   "",
			wantErr: ErrEmptyText,
		},
		{
			name:    "rejects whitespace-only string",
			input:   "   \t\n  ",
			wantErr: ErrEmptyText,
		},
		{
			name:  "preserves unicode content",
			input: "Héllo wörld — ok",
			want:  "Héllo wörld — ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestComposeNFC(t *testing.T) {
	decomposed := "u\u0308ber"
	got := ComposeNFC(decomposed)
	if got != "\u00fcber" {
		t.Errorf("ComposeNFC(%q) = %q, want %q", decomposed, got, "\u00fcber")
	}

	if got := ComposeNFC("plain"); got != "plain" {
		t.Errorf("ComposeNFC(plain) = %q", got)
	}
}
