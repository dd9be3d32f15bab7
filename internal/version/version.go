// Package version holds build metadata injected via ldflags.
package version

// Set at build time, e.g. -ldflags "-X github.com/mark-chris/prodcat/internal/version.Version=1.2.0".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
