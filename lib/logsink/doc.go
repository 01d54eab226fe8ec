// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logsink is the process-wide log destination behind the
// foreign-call bridge and the pstore tool.
//
// A [Sink] owns one destination at a time: a JSON-lines file, optionally
// echoed to the console. [Sink.Configure] replaces the destination and
// [Sink.SetLevel] replaces the verbosity; neither touches the other.
// Loggers returned by [Sink.Logger] always write to the current
// destination, so code that captured a logger before a reconfiguration
// follows it without being rebuilt.
//
// Until the first Configure, records at warn and above go to stderr.
//
// Verbosity is the integer scale foreign callers use:
//
//	<0  errors only
//	 0  warnings (the initial level)
//	 1  info
//	 2  debug
//	 3  trace
//	>=4 everything
//
// The package-level functions operate on a default sink that installs
// itself as [slog.Default] the first time it is configured.
package logsink
