// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for pstore.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a parameter struct whose
// tagged fields become pflag flags ([BindFlags]), and a Run function.
// Commands are assembled into a tree in cmd/pstore/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (distance <= 3).
//
// Errors are categorized with [ToolError] ([Validation], [NotFound],
// [Internal]). [ExitError] reports a handled non-zero exit.
package cli
