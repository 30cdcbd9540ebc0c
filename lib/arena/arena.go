// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"fmt"

	"github.com/cellward/cellward/lib/ward"
)

// Arena owns a growable table of cell-backed slots. It is a single
// aggregate in the ward sense: all slots (and the arena's own
// bookkeeping) hang off one anchor, so one scope token authorizes
// every payload access and every structural mutation.
type Arena[T any] struct {
	anchor *ward.Anchor

	// meta holds the element count and the free-list head in a cell,
	// so Alloc and Free cannot run without presenting a read-write
	// token of the live brand.
	meta *ward.Cell[arenaMeta]

	slots []slotRecord[T]
}

type arenaMeta struct {
	count int

	// freeHead is the slot number of the first free slot, 0 if none.
	freeHead uint32
}

type slotRecord[T any] struct {
	cell       *ward.Cell[T]
	generation uint32
	live       bool

	// nextFree chains free slots; meaningful only while !live.
	nextFree uint32
}

// New returns an empty arena with a fresh anchor.
func New[T any]() *Arena[T] {
	anchor := ward.NewAnchor()
	return &Arena[T]{
		anchor: anchor,
		meta:   ward.NewCell(anchor, arenaMeta{}),
	}
}

// ProjectionAnchor implements [ward.Projectable].
func (a *Arena[T]) ProjectionAnchor() *ward.Anchor {
	return a.anchor
}

// Anchor returns the arena's anchor so that an aggregate built around
// the arena (a list with a header, a tree with a root slot) can tie
// its own extra cells to the same brand.
func (a *Arena[T]) Anchor() *ward.Anchor {
	return a.anchor
}

// Alloc stores value in a fresh slot and returns its index. Reuses a
// freed slot when one is available, growing the table otherwise.
// Requires a read-write token of the live brand.
func (a *Arena[T]) Alloc(token *ward.Token, value T) Index {
	var index Index
	a.meta.Update(token, func(meta *arenaMeta) {
		if meta.freeHead != 0 {
			slotNumber := meta.freeHead
			record := &a.slots[slotNumber-1]
			meta.freeHead = record.nextFree
			record.nextFree = 0
			record.live = true
			index = Index{slot: slotNumber, generation: record.generation}
		} else {
			a.slots = append(a.slots, slotRecord[T]{
				cell:       ward.NewCell(a.anchor, value),
				generation: 1,
				live:       true,
			})
			index = Index{slot: uint32(len(a.slots)), generation: 1}
		}
		meta.count++
	})
	if index.generation > 1 {
		// Reused slot: the cell already exists, store the new value.
		a.slots[index.slot-1].cell.Set(token, value)
	}
	return index
}

// Free releases the slot behind index and returns the value it held.
// The slot's generation advances, so every outstanding copy of index
// becomes stale. Requires a read-write token of the live brand.
func (a *Arena[T]) Free(token *ward.Token, index Index) T {
	record := a.lookup("Free", index)

	var zero T
	value := record.cell.Swap(token, zero)

	record.live = false
	record.generation++
	a.meta.Update(token, func(meta *arenaMeta) {
		record.nextFree = meta.freeHead
		meta.freeHead = index.slot
		meta.count--
	})
	return value
}

// Cell resolves index to its slot's cell. Access to the cell's value
// is still token-gated; resolving only establishes which storage the
// index names. Panics on a none, out-of-range, or stale index.
func (a *Arena[T]) Cell(index Index) *ward.Cell[T] {
	return a.lookup("Cell", index).cell
}

// Contains reports whether index currently resolves to a live slot.
// Unlike Cell it does not panic; use it when staleness is a condition
// to branch on rather than a bug.
func (a *Arena[T]) Contains(index Index) bool {
	if index.IsNone() || int(index.slot) > len(a.slots) {
		return false
	}
	record := &a.slots[index.slot-1]
	return record.live && record.generation == index.generation
}

// Len returns the number of live slots. Requires a token of the live
// brand (read-only suffices).
func (a *Arena[T]) Len(token *ward.Token) int {
	return a.meta.Get(token).count
}

// Cap returns the size of the slot table, live or not. Capacity is
// not cell state, so no token is required.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// lookup resolves index to its record or panics. Index misuse is a
// programmer error with no recovery path, matching the ward fault
// discipline, but it is an arena-level contract rather than a brand
// violation so the panic carries a plain message.
func (a *Arena[T]) lookup(op string, index Index) *slotRecord[T] {
	if index.IsNone() {
		panic(fmt.Sprintf("arena: %s with none index", op))
	}
	if int(index.slot) > len(a.slots) {
		panic(fmt.Sprintf("arena: %s with out-of-range index %v", op, index))
	}
	record := &a.slots[index.slot-1]
	if !record.live || record.generation != index.generation {
		panic(fmt.Sprintf("arena: %s with stale index %v", op, index))
	}
	return record
}
