// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/lib/blockstream"
)

type blocksParams struct {
	commonParams
	inputParams
	Compact    bool                   `json:"compact"     flag:"compact,c"   desc:"compact output (no indentation)"`
	TxEncoding blockstream.TxEncoding `json:"tx_encoding" flag:"tx-encoding" desc:"transaction text encoding, default from config" choices:"hex,base64"`
	TxField    string                 `json:"tx_field"    flag:"tx-field"    desc:"name of the transactions field (default from config)"`
}

// options layers the flags over the configured block options.
func (p *blocksParams) options(env *environment) blockstream.Options {
	options := env.blocks
	if p.TxEncoding != "" {
		options.TxEncoding = p.TxEncoding
	}
	if p.TxField != "" {
		options.TxField = p.TxField
	}
	return options
}

func blocksCommand() *cli.Command {
	var params blocksParams

	return &cli.Command{
		Name:    "blocks",
		Summary: "Convert a block stream to a JSON array",
		Description: `Read a block stream from stdin (or a file argument) and write a JSON
array with one object per record.

A record is a varint-prefixed portable-storage section followed by a
varint transaction count and that many varint-prefixed transaction
blobs. Each output object is the section's JSON projection with one
extra field (default "txs") holding the transactions as hex or base64
strings. An empty stream prints [].

A truncated or corrupt record fails the whole stream; the error names
the record index and its byte offset.`,
		Usage:  "pstore blocks [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a block download",
				Command:     "pstore blocks getblocks.bin",
			},
			{
				Description: "Base64 transactions under a custom field",
				Command:     "pstore blocks --tx-encoding base64 --tx-field transactions getblocks.bin",
			},
		},
		Run: func(args []string, logger *slog.Logger) error {
			env, err := params.load(logger)
			if err != nil {
				return err
			}
			data, err := readBinary("blocks", args, params.HexInput, params.compression(env))
			if err != nil {
				return err
			}
			return decodeBlocks(data, os.Stdout, params.options(env), params.Compact, logger)
		},
	}
}

// decodeBlocks decodes a block stream and writes the JSON array to w.
func decodeBlocks(data []byte, w io.Writer, options blockstream.Options, compact bool, logger *slog.Logger) error {
	document, err := options.BinaryBlocksToJSON(data)
	if err != nil {
		var recordErr *blockstream.RecordError
		if errors.As(err, &recordErr) {
			logger.Debug("block stream rejected", "record", recordErr.Index, "offset", recordErr.Offset)
		}
		return decodeFailure("blocks", err)
	}
	return writeDocument(w, document, compact)
}
