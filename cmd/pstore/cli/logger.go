// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/bureau-foundation/pstore/lib/logsink"
)

// NewCommandLogger returns the process log sink's logger scoped to a
// command path. Records follow the sink: human-readable text on a
// terminal stderr, JSON when piped, and the configured file once
// --log-file or the config's log.path is applied.
func NewCommandLogger(command string) *slog.Logger {
	return logsink.Logger().With("command", command)
}
