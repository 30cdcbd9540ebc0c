// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

// With runs action inside a fresh scope over aggregate. It mints a
// brand no other scope has ever carried, constructs that brand's one
// read-write token, stamps the brand onto the aggregate's anchor,
// and calls action with the (identical, now branded) aggregate and
// the token. action's result and error are forwarded unchanged.
//
// Teardown is unconditional: whether action returns, errors, or
// panics, the anchor is cleared and the token revoked before control
// leaves With. Neither the token nor any cell access survives the
// call usefully — a retained token faults on its next use.
//
// The action must not mutate the aggregate through any path other
// than its cells, and must not hand the token to another goroutine
// (use WithConfined to have that checked).
func With[A Projectable, R any](aggregate A, action func(A, *Token) (R, error)) (R, error) {
	return enter(aggregate, false, false, action)
}

// WithRead is With with a read-only token: cell reads succeed, cell
// writes fault. Use it for inspection paths so that an accidental
// mutation is caught at the offending call site.
func WithRead[A Projectable, R any](aggregate A, action func(A, *Token) (R, error)) (R, error) {
	return enter(aggregate, true, false, action)
}

// WithConfined is With with the token pinned to the calling
// goroutine. Presenting the token from any other goroutine faults
// immediately, turning the package's documented single-goroutine
// boundary into a checked one. The confinement probe costs a
// runtime.Stack call per cell access, so prefer With where the
// boundary is upheld by construction.
func WithConfined[A Projectable, R any](aggregate A, action func(A, *Token) (R, error)) (R, error) {
	return enter(aggregate, false, true, action)
}

// Run is With for actions with no result value.
func Run[A Projectable](aggregate A, action func(A, *Token) error) error {
	_, err := With(aggregate, func(view A, token *Token) (struct{}, error) {
		return struct{}{}, action(view, token)
	})
	return err
}

// With2 runs action inside one scope spanning two aggregates: a
// single fresh brand is stamped onto both anchors, so the one token
// reaches the cells of both. This is how structures are spliced —
// moving nodes from one aggregate into another requires mutating
// cells on each side under the same capability.
//
// The aggregates must be distinct; projecting one aggregate twice is
// the overlapping-scope violation and faults.
func With2[A Projectable, B Projectable, R any](first A, second B, action func(A, B, *Token) (R, error)) (R, error) {
	firstAnchor := first.ProjectionAnchor()
	secondAnchor := second.ProjectionAnchor()
	if firstAnchor == nil || secondAnchor == nil {
		violation("projection", "aggregate returned a nil anchor", Brand{}, Brand{})
	}
	if firstAnchor == secondAnchor {
		violation("projection", "both aggregates share one anchor; use With", firstAnchor.brand, Brand{})
	}

	brand := mintBrand()
	token := newToken(brand, false, false)

	firstAnchor.stamp(brand)
	defer func() {
		firstAnchor.clear()
		token.revoked = true
	}()

	// Stamped second so that a fault here (second aggregate already
	// projected) still unwinds through the first anchor's teardown.
	secondAnchor.stamp(brand)
	defer secondAnchor.clear()

	return action(first, second, token)
}

// enter is the shared scope body behind With, WithRead, and
// WithConfined.
func enter[A Projectable, R any](aggregate A, readOnly, confined bool, action func(A, *Token) (R, error)) (R, error) {
	anchor := aggregate.ProjectionAnchor()
	if anchor == nil {
		violation("projection", "aggregate returned a nil anchor", Brand{}, Brand{})
	}

	brand := mintBrand()
	token := newToken(brand, readOnly, confined)

	anchor.stamp(brand)
	defer func() {
		anchor.clear()
		token.revoked = true
	}()

	return action(aggregate, token)
}
