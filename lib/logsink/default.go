// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsink

import "log/slog"

var defaultSink = newDefault()

func newDefault() *Sink {
	sink := New(nil)
	sink.installDefault = true
	return sink
}

// Default returns the process-wide sink.
func Default() *Sink { return defaultSink }

// Configure configures the process-wide sink. See [Sink.Configure].
func Configure(path string, echoToConsole bool) error {
	return defaultSink.Configure(path, echoToConsole)
}

// SetLevel sets the process-wide verbosity. See [Sink.SetLevel].
func SetLevel(verbosity int) { defaultSink.SetLevel(verbosity) }

// Logger returns a logger on the process-wide sink.
func Logger() *slog.Logger { return defaultSink.Logger() }
