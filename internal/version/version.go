// Package version holds salesgate build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/salesgate/internal/version.Version=...
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
