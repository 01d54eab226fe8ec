// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for pstore packages.
//
// [Receive] and [WaitClosed] bound every channel wait in concurrency
// tests with a timeout, so a deadlock fails the test instead of hanging
// the run.
//
// [ReadLogRecords] parses a JSON-lines log file written by lib/logsink
// into one map per record, for tests that assert on what was logged
// and where.
//
// [UniqueMessage] makes log messages distinguishable across
// reconfigurations of a shared sink.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no pstore-internal dependencies.
package testutil
