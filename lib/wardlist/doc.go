// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

// Package wardlist provides a doubly-linked list built on the ward
// capability discipline. It is the reference consumer of lib/ward
// and lib/arena: every node link and payload lives in token-gated
// cell storage, nodes refer to each other by arena index rather than
// by pointer, and the public API hides tokens entirely — each
// operation opens its own scope, so callers see ordinary value-level
// list methods.
//
// The list is itself a [ward.Projectable] aggregate. That means a
// caller who opens a scope over the list directly and then calls one
// of the list's own methods inside it gets the overlapping-projection
// fault — the list's methods need the aggregate for themselves.
//
// Like the primitives it is built on, the list performs no internal
// synchronization; confine a list to one goroutine or synchronize
// around it.
package wardlist
