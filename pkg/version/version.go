// Package version exposes the build version of tilegrid. The variables are
// set at link time:
//
//	go build -ldflags "-X github.com/rshade/tilegrid/pkg/version.version=v1.2.3"
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information populated via -ldflags.
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "v0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info is the full build description.
type Info struct {
	Version   string `json:"version"   yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"git_commit"`
	BuildDate string `json:"buildDate" yaml:"build_date"`
	GoVersion string `json:"goVersion" yaml:"go_version"`
	Platform  string `json:"platform"  yaml:"platform"`
}

// GetVersion returns the version string.
func GetVersion() string { return version }

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string { return gitCommit }

// GetBuildDate returns the build timestamp.
func GetBuildDate() string { return buildDate }

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats the build information on one line.
func (i Info) String() string {
	return fmt.Sprintf("tilegrid %s (commit %s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Semver parses v as a semantic version.
func Semver(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", v, err)
	}
	return parsed, nil
}

// IsDevelopment reports whether v is a development build: unparsable, or
// carrying a pre-release tag.
func IsDevelopment(v string) bool {
	parsed, err := Semver(v)
	if err != nil {
		return true
	}
	return parsed.Prerelease() != ""
}

// AtLeast reports whether v satisfies ">= minimum". Unparsable versions
// never do.
func AtLeast(v, minimum string) bool {
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false
	}
	parsed, err := Semver(v)
	if err != nil {
		return false
	}
	return c.Check(parsed)
}
