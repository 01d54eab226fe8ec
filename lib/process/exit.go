// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit status
// and have already reported themselves.
type exitCoder interface {
	ExitCode() int
}

// Exit terminates the process for err. A nil err exits 0. An error
// with an ExitCode method exits with that code silently; any other
// error is written to stderr as "error: err" and exits 1.
func Exit(err error) {
	os.Exit(report(os.Stderr, err))
}

func report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(exitCoder); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
