// Package version provides application version information.
// The values can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/proxygen/internal/version.Version=v1.2.3"
package version

import "fmt"

// Build metadata, overridden at link time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// String returns the version with its build metadata.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
