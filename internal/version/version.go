package version

import "fmt"

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/zenithtodo/zenith/internal/version.Version=v1.0.0"
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// CommitSHA is the git commit SHA at build time.
	CommitSHA = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// String combines the build variables for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
