// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package arena

import "fmt"

// Index is a handle to one slot of an [Arena]. Indices are what
// aggregate nodes store in their link cells instead of pointers to
// each other; the arena resolves them on demand.
//
// The zero Index means "no slot" (a nil link) and resolves nowhere.
// An Index remembers the generation of the slot it was issued for,
// so a handle that outlives its slot is detected rather than silently
// reading whatever value reused the slot.
type Index struct {
	slot       uint32
	generation uint32
}

// IsNone reports whether the index is the zero "no slot" value.
func (i Index) IsNone() bool {
	return i.slot == 0
}

// String renders the index for panic messages and debugging.
func (i Index) String() string {
	if i.IsNone() {
		return "none"
	}
	return fmt.Sprintf("slot#%d.g%d", i.slot, i.generation)
}
