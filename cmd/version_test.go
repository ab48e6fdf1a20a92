package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionAndPrint(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldV, oldC, oldB }()
	Version = "1.2.3"
	Commit = "abc"
	BuildTime = "2026-02-27"

	vt := versionText()
	if !strings.Contains(vt, "1.2.3") || !strings.Contains(vt, "abc") || !strings.Contains(vt, "2026-02-27") {
		t.Fatalf("versionText unexpected: %s", vt)
	}

	buf := &bytes.Buffer{}
	printVersion(buf)
	if !strings.HasPrefix(buf.String(), "edgetrans 1.2.3") {
		t.Fatalf("missing version line: %s", buf.String())
	}
}
