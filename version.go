package mp3meta

import "runtime"

// Version is the semantic version of the mp3meta library.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string // set via ldflags
	BuildTime string // set via ldflags
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time:
//
//	go build -ldflags="-X github.com/simonhull/mp3meta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/mp3meta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/id3dump
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
