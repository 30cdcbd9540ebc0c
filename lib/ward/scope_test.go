// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

package ward_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cellward/cellward/lib/testutil"
	"github.com/cellward/cellward/lib/ward"
)

func TestWith_ForwardsResult(t *testing.T) {
	aggregate := newPair(20, 22)

	sum, err := ward.With(aggregate, func(view *pair, token *ward.Token) (int, error) {
		return view.first.Get(token) + view.second.Get(token), nil
	})
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}
	if sum != 42 {
		t.Errorf("sum = %d, want 42", sum)
	}
}

// Every scope entry mints a distinct brand: sequential entries,
// nested entries over different aggregates, and repeated entries over
// the same aggregate.
func TestWith_BrandFreshness(t *testing.T) {
	first := newPair(0, 0)
	second := newPair(0, 0)

	seen := make(map[ward.Brand]bool)
	record := func(brand ward.Brand) {
		if brand.IsZero() {
			t.Error("scope handed out a zero brand")
		}
		if seen[brand] {
			t.Errorf("brand %v minted twice", brand)
		}
		seen[brand] = true
	}

	for i := 0; i < 3; i++ {
		err := ward.Run(first, func(_ *pair, outer *ward.Token) error {
			record(outer.Brand())
			return ward.Run(second, func(_ *pair, inner *ward.Token) error {
				record(inner.Brand())
				return nil
			})
		})
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	}

	if len(seen) != 6 {
		t.Errorf("recorded %d distinct brands, want 6", len(seen))
	}
}

// Brands stay distinct under concurrent scope entries on separate
// aggregates in separate goroutines.
func TestWith_BrandFreshnessConcurrent(t *testing.T) {
	const goroutines = 32
	const scopesPerGoroutine = 64

	brands := make(chan ward.Brand, goroutines*scopesPerGoroutine)
	var group sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			aggregate := newPair(0, 0)
			for j := 0; j < scopesPerGoroutine; j++ {
				_ = ward.Run(aggregate, func(_ *pair, token *ward.Token) error {
					brands <- token.Brand()
					return nil
				})
			}
		}()
	}
	group.Wait()
	close(brands)

	seen := make(map[ward.Brand]bool)
	for brand := range brands {
		if seen[brand] {
			t.Fatalf("brand %v minted twice across goroutines", brand)
		}
		seen[brand] = true
	}
	if len(seen) != goroutines*scopesPerGoroutine {
		t.Errorf("recorded %d distinct brands, want %d", len(seen), goroutines*scopesPerGoroutine)
	}
}

// Projecting an aggregate that is already projected is the
// overlapping-scope violation.
func TestWith_DoubleProjection(t *testing.T) {
	aggregate := newPair(1, 2)

	fault := testutil.RequireFault(t, func() {
		_ = ward.Run(aggregate, func(view *pair, _ *ward.Token) error {
			return ward.Run(view, func(_ *pair, _ *ward.Token) error {
				return nil
			})
		})
	}, "nested scope over one aggregate")
	if fault.Op != "projection" {
		t.Errorf("fault.Op = %q, want %q", fault.Op, "projection")
	}

	// The fault unwound through the outer scope's teardown, so the
	// aggregate is projectable again.
	testutil.RequireNoPanic(t, func() {
		_ = ward.Run(aggregate, func(_ *pair, _ *ward.Token) error { return nil })
	}, "re-projection after double-projection fault")
}

func TestWith_ErrorPropagation(t *testing.T) {
	aggregate := newPair(1, 2)
	sentinel := errors.New("business failure")

	_, err := ward.With(aggregate, func(view *pair, token *ward.Token) (int, error) {
		view.first.Set(token, 10)
		return 0, fmt.Errorf("applying change: %w", sentinel)
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("With() error = %v, want wrapped sentinel", err)
	}

	// The error unwound after teardown: the mutation stuck and the
	// aggregate is re-projectable.
	if got := *aggregate.first.Unguarded(); got != 10 {
		t.Errorf("first after failed scope = %d, want 10", got)
	}
	testutil.RequireNoPanic(t, func() {
		_ = ward.Run(aggregate, func(_ *pair, _ *ward.Token) error { return nil })
	}, "re-projection after action error")
}

func TestWith_PanicPropagation(t *testing.T) {
	aggregate := newPair(1, 2)

	recovered := func() (recovered any) {
		defer func() { recovered = recover() }()
		_ = ward.Run(aggregate, func(_ *pair, _ *ward.Token) error {
			panic("action blew up")
		})
		return nil
	}()
	if recovered != "action blew up" {
		t.Fatalf("recovered %v, want the action's panic value", recovered)
	}

	testutil.RequireNoPanic(t, func() {
		_ = ward.Run(aggregate, func(_ *pair, _ *ward.Token) error { return nil })
	}, "re-projection after action panic")
}

// A token smuggled out of its scope is inert: the first use faults.
func TestWith_EscapedToken(t *testing.T) {
	aggregate := newPair(1, 2)

	var escaped *ward.Token
	err := ward.Run(aggregate, func(_ *pair, token *ward.Token) error {
		escaped = token
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	fault := testutil.RequireFault(t, func() {
		aggregate.first.Get(escaped)
	}, "escaped token use")
	if fault.Reason != "token used after its scope ended" {
		t.Errorf("fault.Reason = %q", fault.Reason)
	}

	// The escaped token does not work inside a later scope either:
	// the new scope carries a new brand and the old token is revoked.
	err = ward.Run(aggregate, func(view *pair, _ *ward.Token) error {
		testutil.RequireFault(t, func() {
			view.first.Set(escaped, 9)
		}, "escaped token inside a later scope")
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestWith_NilAnchor(t *testing.T) {
	fault := testutil.RequireFault(t, func() {
		_ = ward.Run(brokenAggregate{}, func(_ brokenAggregate, _ *ward.Token) error {
			return nil
		})
	}, "nil anchor from aggregate")
	if fault.Op != "projection" {
		t.Errorf("fault.Op = %q, want %q", fault.Op, "projection")
	}
}

// brokenAggregate violates the Projectable contract by returning a
// nil anchor.
type brokenAggregate struct{}

func (brokenAggregate) ProjectionAnchor() *ward.Anchor { return nil }

func TestWith2_SharedBrand(t *testing.T) {
	source := newPair(1, 2)
	target := newPair(0, 0)

	_, err := ward.With2(source, target, func(from, to *pair, token *ward.Token) (struct{}, error) {
		// One token moves a value across two aggregates.
		to.first.Set(token, from.first.Swap(token, 0))
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("With2() error: %v", err)
	}

	if got := *source.first.Unguarded(); got != 0 {
		t.Errorf("source.first = %d, want 0", got)
	}
	if got := *target.first.Unguarded(); got != 1 {
		t.Errorf("target.first = %d, want 1", got)
	}
}

func TestWith2_SameAggregate(t *testing.T) {
	aggregate := newPair(1, 2)

	fault := testutil.RequireFault(t, func() {
		_, _ = ward.With2(aggregate, aggregate, func(_, _ *pair, _ *ward.Token) (struct{}, error) {
			return struct{}{}, nil
		})
	}, "With2 over one aggregate")
	if fault.Op != "projection" {
		t.Errorf("fault.Op = %q, want %q", fault.Op, "projection")
	}
}

// If the second aggregate is already projected, With2 faults — and
// must still tear down the first aggregate's projection on the way
// out.
func TestWith2_SecondAlreadyProjected(t *testing.T) {
	first := newPair(1, 2)
	second := newPair(3, 4)

	testutil.RequireFault(t, func() {
		_ = ward.Run(second, func(liveSecond *pair, _ *ward.Token) error {
			_, err := ward.With2(first, liveSecond, func(_, _ *pair, _ *ward.Token) (struct{}, error) {
				return struct{}{}, nil
			})
			return err
		})
	}, "With2 against a live projection")

	testutil.RequireNoPanic(t, func() {
		_ = ward.Run(first, func(_ *pair, _ *ward.Token) error { return nil })
	}, "first aggregate re-projectable after With2 fault")
	testutil.RequireNoPanic(t, func() {
		_ = ward.Run(second, func(_ *pair, _ *ward.Token) error { return nil })
	}, "second aggregate re-projectable after With2 fault")
}

func TestWithConfined_SameGoroutine(t *testing.T) {
	aggregate := newPair(1, 2)

	value, err := ward.WithConfined(aggregate, func(view *pair, token *ward.Token) (int, error) {
		view.first.Set(token, 7)
		return view.first.Get(token), nil
	})
	if err != nil {
		t.Fatalf("WithConfined() error: %v", err)
	}
	if value != 7 {
		t.Errorf("value = %d, want 7", value)
	}
}

func TestWithConfined_CrossGoroutine(t *testing.T) {
	aggregate := newPair(1, 2)

	_, err := ward.WithConfined(aggregate, func(view *pair, token *ward.Token) (struct{}, error) {
		recovered := make(chan any, 1)
		go func() {
			defer func() { recovered <- recover() }()
			view.first.Get(token)
		}()

		fault, ok := (<-recovered).(*ward.Fault)
		if !ok {
			t.Fatal("cross-goroutine use of a confined token did not fault")
		}
		if fault.Reason != "confined token presented from another goroutine" {
			t.Errorf("fault.Reason = %q", fault.Reason)
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("WithConfined() error: %v", err)
	}
}

func TestAnchor_Branded(t *testing.T) {
	aggregate := newPair(1, 2)

	if aggregate.ProjectionAnchor().Branded() {
		t.Error("anchor branded at rest")
	}
	err := ward.Run(aggregate, func(view *pair, _ *ward.Token) error {
		if !view.ProjectionAnchor().Branded() {
			t.Error("anchor not branded inside scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if aggregate.ProjectionAnchor().Branded() {
		t.Error("anchor still branded after scope")
	}
}
