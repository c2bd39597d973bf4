package version

import (
	"fmt"
	"runtime"
)

// Build information, set with
// -ldflags "-X github.com/NicholasDeLioncourt/phonix/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build information for "phonix version".
func String() string {
	return fmt.Sprintf("phonix version %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
		Version, Commit, Date, runtime.Version())
}
