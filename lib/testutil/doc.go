// Copyright 2026 The Cellward Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Cellward
// packages.
//
// [RequireFault] and [RequireNoPanic] encapsulate the
// defer/recover/type-assert pattern for code whose contract
// violations are delivered as [ward.Fault] panics. They are the only
// place in the test suite where recover appears, so individual tests
// read as plain assertions on the returned fault.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since a missing or mistyped fault means the contract under test is
// not being enforced at all.
package testutil
