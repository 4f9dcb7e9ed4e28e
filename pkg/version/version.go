// Package version holds build metadata injected through -ldflags.
package version

import "fmt"

// Build metadata. Overridden at link time:
//
//	go build -ldflags "-X github.com/Sumatoshi-tech/codefolio/pkg/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

// String returns the one-line form printed by `codefolio version`.
func String() string {
	return fmt.Sprintf("codefolio %s (commit %s, built %s)", Version, Commit, Date)
}
