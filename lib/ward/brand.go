// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

import (
	"fmt"
	"sync/atomic"
)

// Brand is the nominal tag linking a token to the cells it may access
// during one scope. Brands are minted from a process-global counter,
// so two brands from distinct scope entries — sequential, nested, or
// on different goroutines — never compare equal. A brand is a plain
// comparable value with no heap resource behind it.
//
// The zero Brand means "unbranded" and never matches a minted brand.
// Brands are not constructible outside this package; they come into
// existence only inside a scope entry point, already paired with
// their one token.
type Brand struct {
	id uint64
}

// brandCounter backs mintBrand. Starting at zero and pre-incrementing
// keeps Brand{} permanently distinct from every minted brand.
var brandCounter atomic.Uint64

// mintBrand returns a brand distinct from every brand minted before
// it in this process, including brands of scopes still live on other
// goroutines.
func mintBrand() Brand {
	return Brand{id: brandCounter.Add(1)}
}

// IsZero reports whether b is the unbranded zero value.
func (b Brand) IsZero() bool {
	return b.id == 0
}

// String renders the brand for fault messages. The numeric identity
// is diagnostic only; callers must not parse it.
func (b Brand) String() string {
	if b.id == 0 {
		return "unbranded"
	}
	return fmt.Sprintf("brand#%d", b.id)
}
