// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/eduardolat/uniqid/internal/version.Version=v1.2.3"
package version

import "fmt"

var (
	// Version is the release version
	Version = "dev"
	// Commit is the git commit the binary was built from
	Commit = "none"
	// Date is the build timestamp
	Date = "unknown"
)

// String returns the product name and version, e.g. "uniqid/v1.2.3"
func String() string {
	return fmt.Sprintf("uniqid/%s", Version)
}
