// Package numeric declares the generic value-type constraint shared by the
// distributed vector, matrix, and SpMV packages (spec.md §9,
// "Template parameterization over index and value types").
package numeric

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Real is the set of value types this library instantiates over: float32
// and float64. Complex types are named in the original source but never
// finished there (spec.md §9); this port does not add them either.
type Real interface {
	~float32 | ~float64
}

// MagnitudeSquared returns |v|^2. For Real types this collapses to v*v;
// the indirection exists so a future complex instantiation (spec.md §1
// Non-goals) has a single place to plug in conjugate-multiply without
// touching every caller.
func MagnitudeSquared[D Real](v D) D {
	return v * v
}
