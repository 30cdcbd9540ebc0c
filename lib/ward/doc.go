// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

// Package ward provides capability-token access control for aliased
// storage cells inside pointer-based data structures (lists, trees,
// graphs). A structure's cells carry no enforcement logic of their
// own; permission to touch them is a separate value — an unforgeable
// Token minted fresh for each bounded scope and tied to the
// structure's cells by a nominal Brand.
//
// One token unlocks every cell of its brand. Within a scope the
// holder can read and mutate many mutually-aliased cells through the
// single token, in ordinary program order, with no lock, no atomic,
// and no per-cell bookkeeping. That is the point of the design: the
// permission check is one word comparison, and the exclusivity that
// makes aliased mutation sound is supplied by the scope discipline
// rather than by runtime synchronization.
//
// # Scopes
//
// [With] is the entry point. It mints a fresh brand, constructs the
// one token for that brand, projects the aggregate under the brand,
// runs the caller's action, and on return (normal, error, or panic)
// clears the projection and revokes the token:
//
//	_, err := ward.With(list, func(view *List, token *ward.Token) (struct{}, error) {
//		view.head.Set(token, 42)
//		return struct{}{}, nil
//	})
//
// [WithRead] hands the action a read-only token: cell reads succeed,
// cell writes fault. [With2] projects two aggregates under one shared
// brand so a single token can reach both (splicing one structure
// into another). [WithConfined] pins the token to the calling
// goroutine. [Run] is [With] without a result value.
//
// # Projection
//
// Aggregates are brand-free at rest. Every cell of an aggregate
// points at the aggregate's single [Anchor]; projecting the
// aggregate stamps the new brand into that anchor — one word store,
// no copy, no traversal, and the branded view is the very same value
// the caller passed in. An aggregate type opts in by implementing
// [Projectable] exactly once. The anchor is the trusted boundary of
// the package: whoever wires cells to anchors must ensure that all
// cells sharing an anchor belong to one aggregate with one owner.
//
// # Faults
//
// Presenting a wrong-brand token, writing through a read-only token,
// using a token after its scope ended, or projecting an aggregate
// that is already projected are contract violations, not recoverable
// errors. There is no safe continuation once one has happened, so
// every violation panics with a [Fault] describing the operation,
// the brand the cell required, and the brand the token carried.
// Ordinary errors returned by a scope action propagate unchanged.
//
// # Concurrency
//
// The package performs no synchronization on the access path. A
// token is safe exactly where any other unsynchronized Go value is
// safe: within one goroutine, or under external synchronization the
// caller supplies. [WithConfined] turns cross-goroutine token use
// into an immediate fault for callers who want the single-writer
// boundary checked rather than merely documented.
package ward
