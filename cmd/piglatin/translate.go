package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/piglatin"
	"github.com/example/go-piglatin/internal/server"
	"github.com/example/go-piglatin/internal/text"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type decodeOptions struct {
	JSON    bool
	Explain bool
}

func newEncodeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Translate English text to Pig Latin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runEncode(cfg, input, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to translate (reads stdin when empty)")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	var input string
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Translate Pig Latin text back to English",
		Long: "Translate Pig Latin text back to English.\n\n" +
			"Words that look like Pig Latin but match no dictionary word are\n" +
			"printed in curly braces.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runDecode(cfg, input, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to translate (reads stdin when empty)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print per-word results as JSON")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "Include the candidates tried for each word")

	return cmd
}

func runEncode(cfg config.Config, input string, stdin io.Reader, stdout io.Writer) error {
	tr, err := server.NewTranslator(cfg)
	if err != nil {
		return err
	}
	src, err := readInput(cfg, input, stdin)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, text.MapLines(src, tr.Encode))
	return err
}

type decodeOutput struct {
	Text       string            `json:"text"`
	Unresolved int               `json:"unresolved"`
	Words      []piglatin.Result `json:"words"`
}

func runDecode(cfg config.Config, input string, opts decodeOptions, stdin io.Reader, stdout io.Writer) error {
	tr, err := server.NewTranslator(cfg)
	if err != nil {
		return err
	}
	src, err := readInput(cfg, input, stdin)
	if err != nil {
		return err
	}

	pieces := text.DecodeLines(tr, src)
	out := decodeOutput{
		Text:       piglatin.Render(pieces),
		Unresolved: piglatin.CountUnresolved(pieces),
		Words:      []piglatin.Result{},
	}
	for _, p := range pieces {
		if p.Separator {
			continue
		}
		res := p.Result
		if !opts.Explain {
			res.Candidates = nil
		}
		out.Words = append(out.Words, res)
	}

	slog.Debug("decode complete",
		slog.Int("text_len", len(src)),
		slog.Int("words", len(out.Words)),
		slog.Int("unresolved", out.Unresolved),
	)

	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintln(stdout, out.Text); err != nil {
		return err
	}
	if opts.Explain {
		writeExplain(stdout, out.Words)
	}
	return nil
}

// writeExplain prints a table of the candidates tried for every word that
// needed a guess, in the order they were tried. The result is shown next to
// the chosen candidate, or after the last one for unresolved words.
func writeExplain(w io.Writer, words []piglatin.Result) {
	var data [][]string

	for _, res := range words {
		pick := res.Chosen()
		for i, c := range res.Candidates {
			chosen := ""
			switch {
			case i == pick:
				chosen = res.String()
			case pick < 0 && i == len(res.Candidates)-1:
				chosen = res.String()
			}
			data = append(data, []string{res.Input, c.Word, yesNo(c.InDictionary), yesNo(c.Capitalized), chosen})
		}
	}
	if len(data) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"WORD", "CANDIDATE", "DICTIONARY", "CAPITALIZED", "RESULT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// readInput returns --text when set and stdin otherwise, normalized for
// translation.
func readInput(cfg config.Config, input string, stdin io.Reader) (string, error) {
	if input == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		input = string(b)
	}

	out, err := text.Normalize(input)
	if errors.Is(err, text.ErrEmptyText) {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	if err != nil {
		return "", err
	}
	if cfg.Translator.NormalizeUnicode {
		out = text.ComposeNFC(out)
	}
	return out, nil
}
