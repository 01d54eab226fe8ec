// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"
	"time"
)

func TestReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 42
	if got := Receive(t, ch, time.Second, "value"); got != 42 {
		t.Errorf("Receive = %d, want 42", got)
	}
}

func TestWaitClosed(t *testing.T) {
	done := make(chan struct{})
	close(done)
	WaitClosed(t, done, time.Second, "closed channel")
}

func TestUniqueMessage(t *testing.T) {
	first := UniqueMessage(t, "label")
	second := UniqueMessage(t, "label")
	if first == second {
		t.Errorf("UniqueMessage returned %q twice", first)
	}
	if !strings.HasPrefix(first, "TestUniqueMessage/label-") {
		t.Errorf("UniqueMessage = %q", first)
	}
}
