package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTranslateCommand_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tok"))
	})
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		var items []struct {
			Text string `json:"Text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&items)
		out := make([]map[string]any, len(items))
		for i, it := range items {
			out[i] = map[string]any{
				"translations": []map[string]any{{"text": "[" + r.URL.Query().Get("to") + "]" + it.Text}},
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDGETRANS_TOKEN", "")
	cfg := filepath.Join(home, "config.yaml")
	body := fmt.Sprintf("endpoint:\n  auth_url: %s/auth\n  translate_url: %s/translate\ntranslate:\n  cushion_ms: 1\n", srv.URL, srv.URL)
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("from stdin\n"))
	rootCmd.SetArgs([]string{"--config", cfg, "--log-level", "error", "translate", "--to", "ja", "--from", "en", "--file", "-", "hello"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if want := "[ja]hello\n[ja]from stdin\n"; out.String() != want {
		t.Fatalf("out=%q want=%q", out.String(), want)
	}
}
