// Package version exposes build-time version metadata.
package version

// Set via -ldflags at build time.
var (
	// Version is the semantic release version.
	Version = "dev"

	// Commit is the git hash the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
