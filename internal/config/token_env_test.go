package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(TokenEnvName, "")
	return home
}

func TestLoadToken_NotConfigured(t *testing.T) {
	isolate(t)
	_, err := LoadToken()
	if !errors.Is(err, ErrTokenNotConfigured) {
		t.Fatalf("err=%v, want ErrTokenNotConfigured", err)
	}
}

func TestLoadToken_EnvWins(t *testing.T) {
	isolate(t)
	if err := SaveToken("from-file"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(TokenEnvName, " from-env ")
	got, err := LoadToken()
	if err != nil {
		t.Fatal(err)
	}
	if got != "from-env" {
		t.Fatalf("got=%q want=from-env", got)
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	home := isolate(t)

	if err := SaveToken("abc123"); err != nil {
		t.Fatalf("SaveToken error: %v", err)
	}
	got, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("got=%q want=%q", got, "abc123")
	}

	b, err := os.ReadFile(filepath.Join(home, ".edgetrans", ".env"))
	if err != nil {
		t.Fatalf("read .env error: %v", err)
	}
	if !strings.Contains(string(b), "EDGETRANS_TOKEN=abc123") {
		t.Fatalf(".env content unexpected: %s", string(b))
	}
}

func TestSaveToken_ReplaceExisting(t *testing.T) {
	home := isolate(t)

	envPath := filepath.Join(home, ".edgetrans", ".env")
	if err := os.MkdirAll(filepath.Dir(envPath), 0o755); err != nil {
		t.Fatal(err)
	}
	orig := "# comment\nA=1\nEDGETRANS_TOKEN=old\nB=2\n"
	if err := os.WriteFile(envPath, []byte(orig), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := SaveToken("new-token"); err != nil {
		t.Fatalf("SaveToken error: %v", err)
	}
	got, err := os.ReadFile(envPath)
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if !strings.Contains(s, "EDGETRANS_TOKEN=new-token") {
		t.Fatalf("missing updated token: %s", s)
	}
	if strings.Contains(s, "EDGETRANS_TOKEN=old") {
		t.Fatalf("old token still exists: %s", s)
	}
	if !strings.Contains(s, "A=1") || !strings.Contains(s, "# comment") {
		t.Fatalf("other lines lost: %s", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Fatalf("expected trailing newline: %q", s)
	}
}

func TestLoadToken_QuotedAndEmpty(t *testing.T) {
	home := isolate(t)
	envPath := filepath.Join(home, ".edgetrans", ".env")
	if err := os.MkdirAll(filepath.Dir(envPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("EDGETRANS_TOKEN='quoted'\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken error: %v", err)
	}
	if got != "quoted" {
		t.Fatalf("got=%q want=quoted", got)
	}

	if err := os.WriteFile(envPath, []byte("EDGETRANS_TOKEN=\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = LoadToken()
	if !errors.Is(err, ErrTokenNotConfigured) {
		t.Fatalf("err=%v, want ErrTokenNotConfigured", err)
	}
}
