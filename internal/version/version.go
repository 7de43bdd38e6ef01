package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the ember CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
	dimColor   = color.New(color.Faint)
)

// Banner renders "ember 0.1.0-dev (commit, date, go1.x)"; the version
// components are colored when colored is set.
func Banner(colored bool) string {
	var sb strings.Builder
	sb.WriteString("ember ")
	sb.WriteString(colorize(Version, colored))

	details := make([]string, 0, 3)
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		details = append(details, commit)
	}
	if BuildDate != "" {
		details = append(details, BuildDate)
	}
	details = append(details, runtime.Version())
	paren := "(" + strings.Join(details, ", ") + ")"
	if colored {
		paren = paint(dimColor, colored, paren)
	}
	sb.WriteString(" ")
	sb.WriteString(paren)
	return sb.String()
}

// colorize красит major.minor.patch, суффикс остаётся как есть.
func colorize(v string, colored bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return fmt.Sprintf("%s.%s.%s%s",
		paint(majorColor, colored, parts[0]),
		paint(minorColor, colored, parts[1]),
		paint(patchColor, colored, parts[2]),
		suffix)
}

func paint(c *color.Color, colored bool, s string) string {
	if !colored {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}
