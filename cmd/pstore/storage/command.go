// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import "github.com/bureau-foundation/pstore/cmd/pstore/cli"

// Commands returns the portable-storage commands, in the order the
// root help lists them.
func Commands() []*cli.Command {
	return []*cli.Command{
		encodeCommand(),
		decodeCommand(),
		blocksCommand(),
		diagCommand(),
		validateCommand(),
	}
}
