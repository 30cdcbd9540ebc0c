// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"

	"github.com/cellward/cellward/lib/ward"
)

// RequireFault runs fn, expecting it to panic with a *ward.Fault, and
// returns the fault for further assertions. A normal return, or a
// panic with any other value, fails the test.
//
//	fault := testutil.RequireFault(t, func() { cell.Set(staleToken, 1) }, "stale token write")
//	if fault.Op != "cell write" { ... }
func RequireFault(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, fn func(), msgAndArgs ...any) *ward.Fault {
	t.Helper()

	var fault *ward.Fault
	func() {
		defer func() {
			recovered := recover()
			if recovered == nil {
				t.Fatalf("expected a ward fault, got normal return: %s", formatMessage(msgAndArgs))
			}
			var ok bool
			fault, ok = recovered.(*ward.Fault)
			if !ok {
				t.Fatalf("expected a *ward.Fault panic, got %T (%v): %s", recovered, recovered, formatMessage(msgAndArgs))
			}
		}()
		fn()
	}()
	return fault
}

// RequireNoPanic runs fn and fails the test if it panics. Use it to
// pin down the positive side of a contract: the access that must be
// admitted.
func RequireNoPanic(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, fn func(), msgAndArgs ...any) {
	t.Helper()

	defer func() {
		if recovered := recover(); recovered != nil {
			t.Fatalf("unexpected panic %v: %s", recovered, formatMessage(msgAndArgs))
		}
	}()
	fn()
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
