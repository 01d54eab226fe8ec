// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage implements the pstore commands that convert between
// JSON and the portable-storage binary format.
//
// Commands:
//
//   - encode: convert a JSON object to a binary buffer.
//   - decode: convert a binary buffer to JSON.
//   - blocks: convert a block stream to a JSON array of records.
//   - diag: print a buffer in CBOR diagnostic notation, keeping wire types.
//   - validate: check that a buffer survives a JSON round trip.
//
// Binary input comes from stdin or a single file argument. It may be
// hex text (--hex) and may be zstd or LZ4 compressed; by default the
// compression is detected from the frame magic.
//
// Every command reads pstore.yaml from --config or $PSTORE_CONFIG for
// codec limits, block stream options and logging, and flags override
// the file.
package storage
