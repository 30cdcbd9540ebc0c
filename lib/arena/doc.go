// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

// Package arena provides a slot arena whose payloads live in
// [ward.Cell] storage, for building cyclic and mutually-aliased
// structures (doubly-linked lists, trees with parent pointers,
// graphs) without raw mutual pointers.
//
// Nodes refer to each other by [Index] — a nominal, generation-checked
// handle into the owning arena — and every payload access and every
// structural mutation (Alloc, Free) presents a ward token. The arena
// is one aggregate: it implements [ward.Projectable] with a single
// anchor shared by all of its slots, so one scope's token unlocks the
// whole structure.
//
// Indices are value types and carry the generation of the slot they
// were issued for. Resolving an index whose slot has since been freed
// (or freed and reused) panics: stale handles are programmer errors,
// not conditions to test for.
package arena
