// Package version reports the channel build version.
//
//nolint:revive
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is overridden by ldflags at build time.
	Version = "dev"
	// CommitHash is overridden by ldflags; falls back to vcs.revision.
	CommitHash = ""
	// BuildTime is overridden by ldflags; falls back to vcs.time.
	BuildTime = ""

	buildInfoOnce sync.Once
)

func loadBuildInfo() {
	if CommitHash != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			CommitHash = setting.Value
		case "vcs.time":
			BuildTime = setting.Value
		}
	}
}

// GetInfo returns the version followed by the short commit hash, if known.
func GetInfo() string {
	buildInfoOnce.Do(loadBuildInfo)

	if CommitHash == "" {
		return Version
	}
	short := CommitHash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, short)
}
