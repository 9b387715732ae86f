// Package version exposes build-time version information.
package version

// Set at build time via -ldflags; defaults apply to plain `go build`.
var (
	// Version is the semantic version of the release.
	Version = "0.1.0"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// GitCommit is the short git commit hash.
	GitCommit = "unknown"
)
