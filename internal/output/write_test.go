package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"edgetrans/internal/translate"
)

var sample = []translate.Result{
	{Text: "こんにちは", Lang: translate.English},
	{Text: "", Lang: translate.English},
	{Text: "a\nb\tc", Lang: translate.French},
}

func TestWrite_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: FormatText, want: "こんにちは\n\na\\nb\tc\n"},
		{format: FormatTSV, want: "en\tこんにちは\nen\t\nfr\ta\\nb\\tc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, sample, tt.format); err != nil {
				t.Fatalf("Write error: %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("got=%q want=%q", buf.String(), tt.want)
			}
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 3 || got[2]["text"] != "a\nb\tc" || got[2]["lang"] != "fr" {
		t.Fatalf("got=%v", got)
	}

	buf.Reset()
	if err := Write(&buf, nil, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("empty json=%q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample, "xml"); err == nil {
		t.Fatal("expected error")
	}
	if ValidFormat("xml") || !ValidFormat(FormatTSV) {
		t.Fatal("ValidFormat mismatch")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ja.txt")
	if err := WriteFile(path, sample[:1], FormatText); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "こんにちは\n" {
		t.Fatalf("content=%q", b)
	}
}
