package version

import (
	"fmt"
	"runtime"
)

// Version information, overridable at build time via -ldflags.
const (
	Major = 0
	Minor = 3
	Patch = 0
)

var (
	GitCommit = ""
	BuildDate = ""
)

// String returns the semantic version, with the short commit when known.
func String() string {
	v := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
	if len(GitCommit) >= 7 {
		v += fmt.Sprintf(" (%s)", GitCommit[:7])
	}
	return v
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Info returns complete build information.
func Info() BuildInfo {
	return BuildInfo{
		Version:   String(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
