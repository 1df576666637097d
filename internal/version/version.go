// Package version carries build identity, populated via -ldflags.
package version

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// CommitHash is the short git hash of the build.
	CommitHash = "unknown"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
