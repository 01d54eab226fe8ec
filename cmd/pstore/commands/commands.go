// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete pstore CLI command tree.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/pstore/cmd/pstore/cli"
	"github.com/bureau-foundation/pstore/cmd/pstore/storage"
	"github.com/bureau-foundation/pstore/lib/version"
)

// Root builds and returns the complete pstore command tree.
func Root() *cli.Command {
	subcommands := storage.Commands()
	subcommands = append(subcommands, &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			fmt.Printf("pstore %s\n", version.Full())
			return nil
		},
	})

	return &cli.Command{
		Name: "pstore",
		Description: `pstore: convert between JSON and the portable-storage binary format.

Portable storage is a compact, self-describing key/value encoding for
RPC bodies and block downloads. pstore encodes JSON requests, decodes
responses and block streams, and shows the exact wire types of a
buffer.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Encode a request body",
				Command:     "echo '{\"heights\":[123456]}' | pstore encode > request.bin",
			},
			{
				Description: "Decode a response body",
				Command:     "pstore decode response.bin",
			},
			{
				Description: "Decode a block download with base64 transactions",
				Command:     "pstore blocks --tx-encoding base64 getblocks.bin",
			},
			{
				Description: "See which fields are doubles, narrow integers, or raw bytes",
				Command:     "pstore diag response.bin",
			},
		},
	}
}
