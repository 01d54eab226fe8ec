// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/pstore/lib/blockstream"
	"github.com/bureau-foundation/pstore/lib/boundary"
	"github.com/bureau-foundation/pstore/lib/logsink"
	"github.com/bureau-foundation/pstore/lib/portable"
)

// Bridge runs codec operations on behalf of one foreign runtime.
type Bridge struct {
	// Runtime allocates result handles in the caller's memory.
	// Required.
	Runtime boundary.Runtime

	// Limits bounds every parse and decode.
	Limits portable.Options

	// Blocks configures BinaryBlocksToJSON. Its Codec field is
	// replaced by Limits.
	Blocks blockstream.Options

	// Sink receives InitLogging and SetLogLevel. If nil,
	// logsink.Default() is used.
	Sink *logsink.Sink

	// Logger receives per-call diagnostics at Debug level. If nil, the
	// sink's logger is used.
	Logger *slog.Logger
}

func (b *Bridge) sink() *logsink.Sink {
	if b.Sink != nil {
		return b.Sink
	}
	return logsink.Default()
}

func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return b.sink().Logger()
}

func (b *Bridge) fail(operation string, err error) error {
	b.logger().Debug("bridge call failed", "operation", operation, "error", err)
	return fmt.Errorf("%s: %w", operation, err)
}

// JSONToBinary encodes a JSON object to a portable-storage buffer. A
// nil json handle is an empty document and fails as malformed JSON.
func (b *Bridge) JSONToBinary(json boundary.Text) (boundary.ByteArray, error) {
	const operation = "jsonToBinary"
	document, err := boundary.TextIn(json)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	bin, err := b.Limits.JSONToBinary([]byte(document))
	if err != nil {
		return nil, b.fail(operation, err)
	}
	array, err := boundary.BytesOut(b.Runtime, bin)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	b.logger().Debug("bridge call", "operation", operation, "input_bytes", len(document), "output_bytes", len(bin))
	return array, nil
}

// BinaryToJSON decodes a portable-storage buffer to compact JSON text.
func (b *Bridge) BinaryToJSON(bin boundary.ByteArray) (boundary.Text, error) {
	const operation = "binaryToJson"
	data, err := boundary.BytesIn(bin)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	document, err := b.Limits.BinaryToJSON(data)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	return b.textOut(operation, len(data), document)
}

// BinaryBlocksToJSON decodes a block stream to a JSON array. An empty
// stream yields "[]".
func (b *Bridge) BinaryBlocksToJSON(bin boundary.ByteArray) (boundary.Text, error) {
	const operation = "binaryBlocksToJson"
	data, err := boundary.BytesIn(bin)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	options := b.Blocks
	options.Codec = b.Limits
	document, err := options.BinaryBlocksToJSON(data)
	if err != nil {
		return nil, b.fail(operation, err)
	}
	return b.textOut(operation, len(data), document)
}

func (b *Bridge) textOut(operation string, inputBytes int, document []byte) (boundary.Text, error) {
	text, err := boundary.TextOut(b.Runtime, string(document))
	if err != nil {
		return nil, b.fail(operation, err)
	}
	b.logger().Debug("bridge call", "operation", operation, "input_bytes", inputBytes, "output_bytes", len(document))
	return text, nil
}

// InitLogging configures the log destination. A nil or empty path
// selects the sink's default destination.
func (b *Bridge) InitLogging(path boundary.Text, echoToConsole bool) error {
	const operation = "initLogging"
	destination, err := boundary.TextIn(path)
	if err != nil {
		return b.fail(operation, err)
	}
	if err := b.sink().Configure(destination, echoToConsole); err != nil {
		return b.fail(operation, err)
	}
	return nil
}

// SetLogLevel sets the log verbosity on the integer scale of
// logsink.LevelFromVerbosity.
func (b *Bridge) SetLogLevel(verbosity int) {
	b.sink().SetLevel(verbosity)
}
