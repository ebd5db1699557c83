// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String renders the build metadata on one line.
func String() string {
	return fmt.Sprintf("markscan %s (commit: %s, built: %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
