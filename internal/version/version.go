// Package version provides version information for cmdapi.
// The Version variable is set at build time via ldflags.
package version

import (
	"runtime/debug"
)

// Version is the current version of cmdapi.
// Set at build time via: -ldflags "-X github.com/xdg/cmdapi/internal/version.Version=v1.0.0"
// Defaults to "dev" for development builds.
var Version = "dev"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns Version, followed by the short VCS revision when the
// binary was built from a checkout (e.g., "dev (1a2b3c4, modified)").
func String() string {
	info, ok := readBuildInfo()
	if !ok {
		return Version
	}

	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" {
		return Version
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified {
		return Version + " (" + revision + ", modified)"
	}
	return Version + " (" + revision + ")"
}
