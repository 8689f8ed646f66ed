package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the lunar CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version checked against [toolchain].lunar.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info: сводка о сборке для `lunar version --format json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Banner renders the version with coloured major/minor/patch parts.
// Falls back to the raw string when Version is not valid semver.
func Banner() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return Version
	}
	out := versionMajorColor.Sprint(v.Major()) + "." +
		versionMinorColor.Sprint(v.Minor()) + "." +
		versionPatchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		out += "-" + pre
	}
	return out
}

// Pretty формирует многострочный вывод `lunar version`.
func (i Info) Pretty(banner string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lunar %s\n", banner)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", i.GitCommit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", i.BuildDate)
	}
	fmt.Fprintf(&sb, "go:     %s %s\n", i.GoVersion, i.Platform)
	return sb.String()
}
