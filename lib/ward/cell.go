// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

// Cell holds one value of an aggregate — a payload, a link, a piece
// of header bookkeeping. The value itself carries no guard; every
// access presents a *Token, and the cell admits it only when the
// token's brand matches the brand currently stamped on the cell's
// anchor. Many cells share one anchor, so one token unlocks all of
// them for the duration of a scope.
//
// Cells are brand-free at rest: outside a scope the anchor is
// unbranded and no token matches, so a retained token (or a cell
// reached through a retained view) faults on first use.
type Cell[T any] struct {
	anchor *Anchor
	value  T
}

// NewCell wraps value in a cell tied to the aggregate's anchor. The
// caller is the aggregate's own constructor; it must pass the same
// anchor for every cell of the aggregate.
func NewCell[T any](anchor *Anchor, value T) *Cell[T] {
	if anchor == nil {
		violation("cell creation", "nil anchor", Brand{}, Brand{})
	}
	return &Cell[T]{anchor: anchor, value: value}
}

// Get returns a copy of the cell's value. Allowed for both read-write
// and read-only tokens of the matching brand.
func (c *Cell[T]) Get(token *Token) T {
	token.authorize("cell read", c.anchor.brand, false)
	return c.value
}

// Set replaces the cell's value. Requires a read-write token of the
// matching brand.
func (c *Cell[T]) Set(token *Token, value T) {
	token.authorize("cell write", c.anchor.brand, true)
	c.value = value
}

// Update calls mutate with a pointer into the cell's storage.
// Requires a read-write token of the matching brand. The pointer is
// valid only for the duration of the call; mutate must not retain it.
func (c *Cell[T]) Update(token *Token, mutate func(*T)) {
	token.authorize("cell write", c.anchor.brand, true)
	mutate(&c.value)
}

// Swap stores value and returns the previous value. Requires a
// read-write token of the matching brand.
func (c *Cell[T]) Swap(token *Token, value T) T {
	token.authorize("cell write", c.anchor.brand, true)
	previous := c.value
	c.value = value
	return previous
}

// Unguarded returns a pointer to the cell's storage with no token
// check. This is the owner's escape hatch for moments when
// exclusivity is established by ownership rather than by a scope:
// construction before the aggregate is shared, and dismantling after
// the last projection has ended. Calling it while any projection of
// the anchor is live forfeits every guarantee the package makes.
func (c *Cell[T]) Unguarded() *T {
	return &c.value
}
