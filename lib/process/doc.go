// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for pstore
// binaries. It holds the raw stderr write that happens after main's
// run function returns, when no structured logger can be trusted to be
// configured.
package process
