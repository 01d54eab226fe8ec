// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func saveVersion(t *testing.T) {
	t.Helper()
	saved := []string{Version, GitCommit, GitDirty, BuildTime}
	savedReader := readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
		readBuildInfo = savedReader
	})
}

func TestInfo(t *testing.T) {
	saveVersion(t)
	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-10-14T00:00:00Z"

	GitDirty = "false"
	if got, want := Info(), "1.2.3 (abc1234, 2026-10-14T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-10-14T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	if Short() != "1.2.3" || Commit() != "abc1234" {
		t.Errorf("Short/Commit = %q/%q", Short(), Commit())
	}
	full := Full()
	if !strings.HasPrefix(full, Info()) || !strings.Contains(full, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q", full)
	}
}

func TestInfoFromBuildStamp(t *testing.T) {
	saveVersion(t)
	Version, GitCommit, GitDirty, BuildTime = defaultVersion, "unknown", "false", "unknown"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Path: "github.com/bureau-foundation/pstore", Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			},
		}, true
	}

	if got, want := Info(), "v0.4.0 (0123456-dirty, 2026-10-01T12:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInjectedCommitIgnoresBuildStamp(t *testing.T) {
	saveVersion(t)
	Version, GitCommit, GitDirty, BuildTime = "1.0.0", "fedcba9", "false", "2026-10-14T00:00:00Z"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}},
		}, true
	}

	if got, want := Info(), "1.0.0 (fedcba9, 2026-10-14T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}
