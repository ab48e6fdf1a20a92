package util

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	appDir, err := DefaultAppDir()
	if err != nil {
		t.Fatalf("DefaultAppDir error: %v", err)
	}
	wantApp := filepath.Join(home, ".edgetrans")
	if appDir != wantApp {
		t.Fatalf("appDir=%q want=%q", appDir, wantApp)
	}

	cfgPath, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath error: %v", err)
	}
	wantCfg := filepath.Join(wantApp, "config.yaml")
	if cfgPath != wantCfg {
		t.Fatalf("cfgPath=%q want=%q", cfgPath, wantCfg)
	}

	envPath, err := DefaultEnvPath()
	if err != nil {
		t.Fatalf("DefaultEnvPath error: %v", err)
	}
	if want := filepath.Join(wantApp, ".env"); envPath != want {
		t.Fatalf("envPath=%q want=%q", envPath, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":             home,
		"~/logs/a.log":  filepath.Join(home, "logs", "a.log"),
		"/var/log/x":    "/var/log/x",
		"relative/path": "relative/path",
		"~user/x":       "~user/x",
		"":              "",
	}
	for in, want := range tests {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ExpandHome(%q)=%q want=%q", in, got, want)
		}
	}
}
