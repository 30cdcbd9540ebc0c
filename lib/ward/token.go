// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

import (
	"bytes"
	"runtime"
	"strconv"
)

// Token is the capability granting access to every cell carrying its
// brand. Exactly one token exists per brand: both are created
// together inside a scope entry point and the token is revoked when
// that scope returns. A read-write token (from [With]) authorizes
// reads and writes; a read-only token (from [WithRead]) authorizes
// reads only.
//
// A token held past its scope is inert: any later use faults. Tokens
// must not be shared across goroutines unless the caller supplies
// external synchronization; see [WithConfined] for the checked
// variant of that boundary.
type Token struct {
	brand    Brand
	readOnly bool
	revoked  bool

	// owner is the id of the goroutine the token is confined to,
	// or 0 for an unconfined token.
	owner int64
}

// newToken pairs a freshly minted brand with its one token. Callers
// are the scope entry points only.
func newToken(brand Brand, readOnly, confined bool) *Token {
	token := &Token{brand: brand, readOnly: readOnly}
	if confined {
		token.owner = currentGoroutineID()
	}
	return token
}

// Brand returns the brand the token carries. Diagnostic only — cells
// perform their own brand comparison on every access.
func (t *Token) Brand() Brand {
	return t.brand
}

// ReadOnly reports whether the token authorizes reads only.
func (t *Token) ReadOnly() bool {
	return t.readOnly
}

// authorize is the single checkpoint every cell operation passes
// through. cellBrand is the brand currently stamped on the cell's
// anchor (zero when the aggregate is not projected). Violations
// panic with a *Fault; a correct program never reaches any of the
// branches.
func (t *Token) authorize(op string, cellBrand Brand, write bool) {
	if t == nil {
		violation(op, "nil token", cellBrand, Brand{})
	}
	if t.revoked {
		violation(op, "token used after its scope ended", cellBrand, t.brand)
	}
	if t.owner != 0 && t.owner != currentGoroutineID() {
		violation(op, "confined token presented from another goroutine", cellBrand, t.brand)
	}
	if cellBrand.IsZero() {
		violation(op, "cell is not under a live projection", cellBrand, t.brand)
	}
	if t.brand != cellBrand {
		violation(op, "token brand does not match cell brand", cellBrand, t.brand)
	}
	if write && t.readOnly {
		violation(op, "write through a read-only token", cellBrand, t.brand)
	}
}

// currentGoroutineID extracts the running goroutine's id from the
// first line of its stack header ("goroutine N [running]:"). The
// runtime offers no direct accessor; this probe runs only when a
// token is minted confined or checked for confinement, never on the
// unconfined fast path.
func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if index := bytes.IndexByte(header, ' '); index > 0 {
		if id, err := strconv.ParseInt(string(header[:index]), 10, 64); err == nil {
			return id
		}
	}
	// Unparseable stack headers would mean a runtime format change;
	// fail closed rather than misattribute ownership.
	panic("ward: cannot determine goroutine id from stack header")
}
