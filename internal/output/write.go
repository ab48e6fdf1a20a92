package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"edgetrans/internal/translate"
)

const (
	FormatText = "text"
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

type record struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatTSV, FormatJSON:
		return true
	}
	return false
}

// Write renders results one per line (text, tsv) or as a JSON array.
// Newlines inside a translation are escaped for the line formats so the
// line count always matches the result count.
func Write(w io.Writer, results []translate.Result, format string) error {
	switch format {
	case FormatJSON:
		recs := make([]record, len(results))
		for i, r := range results {
			recs[i] = record{Text: r.Text, Lang: string(r.Lang)}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case FormatText, FormatTSV:
		bw := bufio.NewWriter(w)
		for _, r := range results {
			text := escapeLine(r.Text)
			if format == FormatTSV {
				fmt.Fprintf(bw, "%s\t%s\n", r.Lang, strings.ReplaceAll(text, "\t", `\t`))
				continue
			}
			fmt.Fprintln(bw, text)
		}
		return bw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile writes results to path, creating parent directories.
func WriteFile(path string, results []translate.Result, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, results, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var lineEscaper = strings.NewReplacer(`\`, `\\`, "\r", `\r`, "\n", `\n`)

func escapeLine(s string) string {
	return lineEscaper.Replace(s)
}
