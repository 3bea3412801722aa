package version

import (
	"time"

	"github.com/blang/semver"
)

// Program is the name written into the creator block of saved snapshots.
const Program = "szx"

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// BuildTime is the build timestamp (set via -ldflags).
	BuildTime = ""
)

type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

func Resolve() Info {
	resolved := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}

	if resolved.Version == "" {
		if resolved.BuildTime != "" {
			resolved.Version = resolved.BuildTime
		} else {
			resolved.Version = time.Now().UTC().Format("20060102T150405Z")
		}
	}

	return resolved
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

// Numbers returns the major and minor release numbers, or zeros when the
// build carries no semantic version (development builds stamped with a
// timestamp).
func Numbers() (major, minor uint16) {
	return numbers(Resolve().Version)
}

func numbers(s string) (major, minor uint16) {
	v, err := semver.ParseTolerant(s)
	if err != nil || v.Major > 0xffff || v.Minor > 0xffff {
		return 0, 0
	}
	return uint16(v.Major), uint16(v.Minor)
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
