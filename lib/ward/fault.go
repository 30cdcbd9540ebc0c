// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

import "fmt"

// Fault describes a capability-contract violation: a token presented
// to a cell of a different brand, a token used after its scope ended,
// a write through a read-only token, a confined token crossing
// goroutines, or a projection of an already-projected aggregate.
//
// Violations are programmer errors with no safe recovery path, so
// they are delivered by panicking with a *Fault rather than returned.
// Fault implements error so that handlers which recover at a process
// boundary (an HTTP middleware, a worker supervisor) can log it with
// full context.
type Fault struct {
	// Op names the rejected operation: "cell read", "cell write",
	// "projection", "scope".
	Op string

	// Reason is a short human-readable explanation.
	Reason string

	// CellBrand is the brand the storage side required. Zero when
	// the violation is not a brand comparison (nil token, revoked
	// token).
	CellBrand Brand

	// TokenBrand is the brand the presented token carried. Zero when
	// no token was involved.
	TokenBrand Brand
}

// Error formats the fault in the package's panic message style.
func (f *Fault) Error() string {
	if f.CellBrand.IsZero() && f.TokenBrand.IsZero() {
		return fmt.Sprintf("ward: %s: %s", f.Op, f.Reason)
	}
	return fmt.Sprintf("ward: %s: %s (cell %v, token %v)", f.Op, f.Reason, f.CellBrand, f.TokenBrand)
}

// violation panics with a *Fault. Every contract check in the package
// funnels through here.
func violation(op, reason string, cellBrand, tokenBrand Brand) {
	panic(&Fault{Op: op, Reason: reason, CellBrand: cellBrand, TokenBrand: tokenBrand})
}
