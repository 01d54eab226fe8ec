// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for pstore.
//
// Configuration is loaded from a single file named by either the
// PSTORE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no automatic file search.
// Without a file, [Default] applies.
//
// The file may carry development and production sections that override
// base values when [Config].Environment matches. Production defaults are
// quieter: errors only, no console echo.
//
// ${HOME} and ${VAR:-default} patterns are expanded in the log path
// after loading. No other environment variables override config values.
//
// This package depends on no other pstore packages; commands translate
// a [Config] into codec and sink options.
package config
