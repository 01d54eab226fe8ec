// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/pstore/cmd/pstore/commands"
	"github.com/bureau-foundation/pstore/lib/process"
)

func main() {
	process.Exit(commands.Root().Execute(os.Args[1:]))
}
