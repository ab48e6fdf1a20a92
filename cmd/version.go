package cmd

import (
	"fmt"
	"io"
	"runtime"
)

// Set with -ldflags "-X edgetrans/cmd.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func versionText() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s/%s)", Version, Commit, BuildTime, runtime.GOOS, runtime.GOARCH)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "edgetrans %s\n", versionText())
}
