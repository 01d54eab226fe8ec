// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/portable"
)

type decodeParams struct {
	commonParams
	inputParams
	Compact bool `json:"compact" flag:"compact,c" desc:"compact output (no indentation)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a portable-storage buffer to JSON",
		Description: `Read a portable-storage buffer from stdin (or a file argument) and
write its JSON projection to stdout.

Field order is preserved. Doubles always print with a decimal point
or exponent so that re-encoding keeps them doubles. Strings that are
not valid UTF-8 print as lowercase hex. Use "pstore diag" to see the
exact wire types instead.

By default output is indented with 2 spaces; -c prints the compact
form the library returns.`,
		Usage:  "pstore decode [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a response body",
				Command:     "pstore decode response.bin",
			},
			{
				Description: "Decode a hex dump in compact form",
				Command:     "echo '011101010101020101 04 ...' | pstore decode -c --hex",
			},
		},
		Run: func(args []string, logger *slog.Logger) error {
			env, err := params.load(logger)
			if err != nil {
				return err
			}
			data, err := readBinary("decode", args, params.HexInput, params.compression(env))
			if err != nil {
				return err
			}
			return decodeBinary(data, os.Stdout, env.codec, params.Compact)
		},
	}
}

// decodeBinary decodes a buffer and writes its JSON projection to w.
func decodeBinary(data []byte, w io.Writer, options portable.Options, compact bool) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected a portable-storage buffer")
	}

	document, err := options.BinaryToJSON(data)
	if err != nil {
		return decodeFailure("decode", err)
	}
	return writeDocument(w, document, compact)
}

// decodeFailure classifies a decode error and suggests --hex when the
// input looks like text.
func decodeFailure(command string, err error) error {
	toolErr := cli.Validation("%s: %w", command, err)
	if errors.Is(err, portable.ErrInvalidSignature) {
		toolErr.WithHint("The input does not start with the portable-storage header. Pass --hex for hex text.")
	}
	return toolErr
}

// writeDocument writes compact JSON as-is, or re-indented, with a
// trailing newline. Indentation keeps number literals untouched.
func writeDocument(w io.Writer, document []byte, compact bool) error {
	output := document
	if !compact {
		var indented bytes.Buffer
		if err := json.Indent(&indented, document, "", "  "); err != nil {
			return cli.Internal("indent JSON: %w", err)
		}
		output = indented.Bytes()
	}
	output = append(output, '\n')
	if _, err := w.Write(output); err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}
