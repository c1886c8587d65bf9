// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Populated by the build from git metadata.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
