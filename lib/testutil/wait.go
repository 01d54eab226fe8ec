// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"testing"
	"time"
)

// Receive returns the next value from ch, failing the test if none
// arrives within timeout or ch is closed first. what names the awaited
// event in the failure message and may carry format arguments.
//
//	err := testutil.Receive(t, results, 5*time.Second, "worker %d", index)
func Receive[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string, args ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed without a value", fmt.Sprintf(what, args...))
		}
		return value
	case <-timer.C:
		t.Fatalf("%s: nothing received after %v", fmt.Sprintf(what, args...), timeout)
	}
	panic("unreachable")
}

// WaitClosed fails the test unless ch is closed (or delivers) within
// timeout.
//
//	testutil.WaitClosed(t, done, 10*time.Second, "concurrent callers")
func WaitClosed(t testing.TB, ch <-chan struct{}, timeout time.Duration, what string, args ...any) {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
	case <-timer.C:
		t.Fatalf("%s: not closed after %v", fmt.Sprintf(what, args...), timeout)
	}
}
