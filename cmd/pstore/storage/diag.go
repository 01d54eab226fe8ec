// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/blockstream"
	"github.com/bureau-foundation/pstore/lib/codec"
	"github.com/bureau-foundation/pstore/lib/portable"
)

type diagParams struct {
	commonParams
	inputParams
	Blocks bool `json:"blocks" flag:"blocks,b" desc:"treat input as a block stream, one line per record"`
}

func diagCommand() *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show a buffer in CBOR diagnostic notation",
		Description: `Read a portable-storage buffer and write the RFC 8949 Extended
Diagnostic Notation of its value.

Unlike JSON output, diagnostic notation keeps the distinctions the
JSON projection loses: integers versus doubles (2 versus 2.0), text
versus raw bytes (h'...'), and null. Field order is preserved.

With -b, the input is a block stream and each record prints on its
own line as [section, [transactions]], transactions as byte strings.

  {"height": 870987, "ratio": 2.0, "blob": h'ff00'}`,
		Usage:  "pstore diag [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Inspect the wire types of a response",
				Command:     "pstore diag response.bin",
			},
			{
				Description: "Inspect each record of a block stream",
				Command:     "pstore diag -b getblocks.bin",
			},
		},
		Run: func(args []string, logger *slog.Logger) error {
			env, err := params.load(logger)
			if err != nil {
				return err
			}
			data, err := readBinary("diag", args, params.HexInput, params.compression(env))
			if err != nil {
				return err
			}
			if params.Blocks {
				return diagBlocks(data, os.Stdout, env.blocks)
			}
			return diagBinary(data, os.Stdout, env.codec)
		},
	}
}

// diagBinary writes the diagnostic notation of one buffer to w.
func diagBinary(data []byte, w io.Writer, options portable.Options) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected a portable-storage buffer")
	}
	value, err := options.Decode(data)
	if err != nil {
		return decodeFailure("diag", err)
	}
	notation, err := codec.DiagnosePortable(value)
	if err != nil {
		return cli.Internal("diagnose: %w", err)
	}
	if _, err := fmt.Fprintln(w, notation); err != nil {
		return cli.Internal("write output: %w", err)
	}
	return nil
}

// diagBlocks renders every record as a two-item CBOR array of its
// section and its transactions, then walks the resulting sequence one
// item per line.
func diagBlocks(data []byte, w io.Writer, options blockstream.Options) error {
	records, err := options.Decode(data)
	if err != nil {
		return decodeFailure("diag", err)
	}

	var sequence []byte
	for index, record := range records {
		section, err := codec.FromPortable(record.Section)
		if err != nil {
			return cli.Internal("record %d: %w", index, err)
		}
		txs := record.Txs
		if txs == nil {
			txs = [][]byte{}
		}
		transactions, err := codec.Marshal(txs)
		if err != nil {
			return cli.Internal("record %d: %w", index, err)
		}
		item, err := codec.Marshal([]codec.RawMessage{section, transactions})
		if err != nil {
			return cli.Internal("record %d: %w", index, err)
		}
		sequence = append(sequence, item...)
	}

	remaining := sequence
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			return cli.Internal("diagnose CBOR at byte %d: %w", len(sequence)-len(remaining), err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return cli.Internal("write output: %w", err)
		}
		remaining = rest
	}
	return nil
}
