// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Libpstore is the portable-storage codec as a C shared library:
//
//	go build -buildmode=c-shared -o libpstore.so ./cmd/libpstore
//
// Every conversion returns an int status, 0 on success. Results are
// written through out-pointers, allocated with malloc and released by
// the caller with pstore_free; on failure the out-pointer is NULL.
// pstore_strerror describes a status. Binary results are a pointer and
// a length; JSON results are NUL-terminated UTF-8. A NULL JSON argument
// is an empty document and fails as malformed JSON.
//
// Allocation failure has its own status, distinct from every codec
// error, so a caller can tell an exhausted heap from a bad buffer.
//
// The library keeps no state between calls except the process-wide log
// sink that pstore_init_logging and pstore_set_log_level configure.
package main
