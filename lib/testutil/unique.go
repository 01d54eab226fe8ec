// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
)

var messageCounter atomic.Uint64

// UniqueMessage returns a log message no other call in the process
// returns: the test name, label, and a process-wide sequence number.
//
//	message := testutil.UniqueMessage(t, "after") // "TestReconfigure/after-3"
func UniqueMessage(t testing.TB, label string) string {
	return fmt.Sprintf("%s/%s-%d", t.Name(), label, messageCounter.Add(1))
}
