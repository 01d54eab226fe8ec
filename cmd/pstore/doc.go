// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Pstore is the command-line front end to the portable-storage codec.
// It encodes JSON to binary buffers (encode), decodes buffers and block
// streams back to JSON (decode, blocks), prints a buffer's wire types
// in CBOR diagnostic notation (diag), and checks that a buffer survives
// a JSON round trip (validate).
package main
