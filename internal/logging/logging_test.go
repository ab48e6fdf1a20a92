package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_InfoAndFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	var out bytes.Buffer
	lg, err := New(Options{File: logPath, Out: &out})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer lg.Close()

	lg.Info("\x1b[92mchunk\x1b[0m done", "items", 3)
	if !strings.Contains(out.String(), "chunk") {
		t.Fatalf("output missing content: %q", out.String())
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file error: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "\x1b[") {
		t.Fatalf("log file should strip ansi: %q", s)
	}
	if !strings.Contains(s, "chunk done") || !strings.Contains(s, "items=3") {
		t.Fatalf("log file missing message: %q", s)
	}
}

func TestLogger_EventVerbose(t *testing.T) {
	var out bytes.Buffer
	lg, err := New(Options{Verbose: true, Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	defer lg.Close()

	lg.Event("test_event", map[string]any{"k": "v"})
	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected JSON output")
	}
	m := map[string]any{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json: %v, line=%s", err, line)
	}
	if m["event"] != "test_event" {
		t.Fatalf("event=%v", m["event"])
	}
	if m["k"] != "v" {
		t.Fatalf("k=%v", m["k"])
	}
}

func TestLogger_EventQuietOutsideVerbose(t *testing.T) {
	var out bytes.Buffer
	lg, err := New(Options{Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	lg.Event("test_event", map[string]any{"k": "v"})
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLogger_Levels(t *testing.T) {
	var out bytes.Buffer
	lg, err := New(Options{Level: "WARN", Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	lg.Info("hidden")
	lg.Debug("hidden")
	lg.Warn("shown")
	if s := out.String(); strings.Contains(s, "hidden") || !strings.Contains(s, "shown") {
		t.Fatalf("unexpected output: %q", s)
	}

	out.Reset()
	lg, err = New(Options{Verbose: true, Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	lg.Debug("dbg")
	if !strings.Contains(out.String(), "dbg") {
		t.Fatalf("verbose should enable debug: %q", out.String())
	}

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestLogger_CloseTwice(t *testing.T) {
	lg, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := lg.Close(); err != nil {
		t.Fatal(err)
	}
	if err := lg.Close(); err != nil {
		t.Fatal(err)
	}
	if err := Discard().Close(); err != nil {
		t.Fatal(err)
	}
}
