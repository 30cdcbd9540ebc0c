// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward

// Anchor is the point where a brand attaches to an aggregate. Every
// cell of one aggregate holds a pointer to the aggregate's single
// anchor; at rest the anchor is unbranded, and projecting the
// aggregate for a scope stamps the scope's brand into it. Branding
// is therefore one word store — no copy of the aggregate, no
// traversal of its cells — and the branded view handed to the scope
// action is the identical aggregate value.
//
// The anchor wiring is the trusted boundary of the package. Cell
// access checks stay sound only if every cell sharing an anchor
// belongs to one aggregate with one owner, and the aggregate is not
// mutated through any non-cell path while a projection is live.
// Aggregate authors uphold that obligation once, in their
// constructor; everything downstream is checked.
type Anchor struct {
	brand Brand
}

// NewAnchor returns an unbranded anchor for a new aggregate.
func NewAnchor() *Anchor {
	return &Anchor{}
}

// Branded reports whether the anchor currently carries a brand, i.e.
// whether a projection of its aggregate is live right now.
func (a *Anchor) Branded() bool {
	return !a.brand.IsZero()
}

// stamp brands the anchor for the duration of one scope. Stamping an
// already-branded anchor means two live projections would share
// storage, which the exclusivity discipline forbids.
func (a *Anchor) stamp(brand Brand) {
	if !a.brand.IsZero() {
		violation("projection", "aggregate is already projected in a live scope", a.brand, brand)
	}
	a.brand = brand
}

// clear returns the anchor to its unbranded rest state.
func (a *Anchor) clear() {
	a.brand = Brand{}
}

// Projectable is the interface an aggregate type implements — exactly
// once, in its own package — to become usable with the scope entry
// points. ProjectionAnchor must return the one anchor shared by every
// cell of the aggregate, and must return the same anchor for the
// lifetime of the aggregate.
type Projectable interface {
	ProjectionAnchor() *Anchor
}
