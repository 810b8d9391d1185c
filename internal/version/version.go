// Package version carries build metadata injected via -ldflags, e.g.
//
//	-X github.com/Norgate-AV/comdlg/internal/version.Version=v1.2.0
package version

import "fmt"

var (
	// Version is the semantic version
	Version = "dev"
	// Commit is the git commit hash
	Commit = "none"
	// Date is the build date
	Date = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

func GetCommit() string {
	return Commit
}

func GetDate() string {
	return Date
}

// GetFullVersion returns version with commit and date info
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
