// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/pstore/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Values left at their defaults are filled from the VCS stamp the Go
// toolchain embeds, when there is one.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

const defaultVersion = "0.1.0-dev"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

type stamp struct {
	version string
	commit  string
	dirty   bool
	time    string
}

// current merges the ldflags variables with the embedded build info.
// Injected values always win.
func current() stamp {
	result := stamp{
		version: Version,
		commit:  GitCommit,
		dirty:   GitDirty == "true",
		time:    BuildTime,
	}

	info, ok := readBuildInfo()
	if !ok {
		return result
	}
	if result.version == defaultVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		result.version = info.Main.Version
	}
	if result.commit != "unknown" {
		return result
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			result.commit = setting.Value
			if len(result.commit) > 7 {
				result.commit = result.commit[:7]
			}
		case "vcs.modified":
			result.dirty = setting.Value == "true"
		case "vcs.time":
			if result.time == "unknown" {
				result.time = setting.Value
			}
		}
	}
	return result
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	build := current()
	dirty := ""
	if build.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", build.version, build.commit, dirty, build.time)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return current().version
}

// Commit returns the git commit SHA.
func Commit() string {
	return current().commit
}
