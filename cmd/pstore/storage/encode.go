// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/portable"
)

type encodeParams struct {
	commonParams
	JSONC     bool `json:"jsonc"      flag:"jsonc"        desc:"accept comments and trailing commas in the input"`
	HexOutput bool `json:"hex_output" flag:"hex-output,H" desc:"write the buffer as hex text instead of binary"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert a JSON object to a portable-storage buffer",
		Description: `Read a JSON object from stdin (or a file argument) and write its
portable-storage encoding to stdout.

Integer literals become 64-bit integers: uint64 when non-negative,
int64 when negative. Literals with a fraction or exponent become
doubles. Arrays must be homogeneous; integer arrays that mix signs or
exceed int64 fail rather than lose precision.

With --jsonc, comments and trailing commas are stripped before parsing.
The output is binary unless --hex-output is set.`,
		Usage:  "pstore encode [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Encode a request body",
				Command:     "echo '{\"heights\":[123456,1234567,870987]}' | pstore encode > request.bin",
			},
			{
				Description: "Encode an annotated JSONC file as hex",
				Command:     "pstore encode --jsonc --hex-output request.jsonc",
			},
		},
		Run: func(args []string, logger *slog.Logger) error {
			env, err := params.load(logger)
			if err != nil {
				return err
			}
			data, err := readInput("encode", args)
			if err != nil {
				return err
			}
			return encodeJSON(data, os.Stdout, env.codec, params.JSONC, params.HexOutput, logger)
		},
	}
}

// encodeJSON encodes a JSON document and writes the buffer to w. With
// jsoncInput, comments and trailing commas are stripped first.
func encodeJSON(data []byte, w io.Writer, options portable.Options, jsoncInput, hexOutput bool, logger *slog.Logger) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected a JSON object")
	}
	if jsoncInput {
		data = jsonc.ToJSON(data)
	}

	bin, err := options.JSONToBinary(data)
	if err != nil {
		return cli.Validation("encode: %w", err)
	}
	logger.Debug("encoded", "input_bytes", len(data), "output_bytes", len(bin))

	if hexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(bin))
	} else {
		_, err = w.Write(bin)
	}
	if err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}
