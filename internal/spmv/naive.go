// Package spmv implements the four sparse matrix-vector multiply
// strategies over the CSR/RCMat layouts built by internal/mat: Naive,
// Single, Block, and RC, each trading a different communication/
// computation overlap discipline (spec.md §4.5).
package spmv

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"time"

	"slaps-go/internal/mat"
	"slaps-go/internal/metrics"
	"slaps-go/internal/numeric"
	"slaps-go/internal/vec"
)

// mulLocal runs the communication-free diagonal-block phase shared by
// Naive, Single, and Block: for every local row, accumulate
// y[i] += val * x_local[col] over that row's Local adjacency.
func mulLocal[D numeric.Real](m *mat.Mat[D], x, y *vec.Vec[D]) {
	xLocal := x.LocalArrayRead()
	yLocal := y.LocalArrayWrite()
	for i := range yLocal {
		var sum D
		for _, e := range m.LocalRow(i) {
			sum += e.Val * xLocal[e.Col]
		}
		yLocal[i] += sum
	}
}

// Naive applies y += A*x with no prefetch overlap: the local phase runs
// first, then every remote nonzero issues a blocking get one at a time
// (spec.md §4.5.a). Unlike Single/Block/RC it does not require Setup to
// have run (spec.md §9).
func Naive[D numeric.Real](m *mat.Mat[D], x, y *vec.Vec[D]) error {
	if err := m.CheckDimensions(x, y); err != nil {
		return err
	}
	timer := prometheusTimer("naive")
	defer timer()

	mulLocal(m, x, y)

	yLocal := y.LocalArrayWrite()
	for i := range yLocal {
		var sum D
		for _, e := range m.RemoteRow(i) {
			cell, err := x.Cell(e.Col)
			if err != nil {
				return err
			}
			sum += e.Val * cell.Get()
		}
		yLocal[i] += sum
	}
	return nil
}

// Mul zeroes y then applies the named strategy's y += A*x, matching the
// "dot" wrapper in spec.md §4.5.
func Mul[D numeric.Real](strategy Strategy, m *mat.Mat[D], x, y *vec.Vec[D]) error {
	y.SetAll(0)
	switch strategy {
	case StrategyNaive:
		return Naive(m, x, y)
	case StrategySingle:
		return Single(m, x, y)
	case StrategyBlock:
		return Block(m, x, y)
	default:
		return mat.ErrNotSetUp
	}
}

// Strategy names one of the four SpMV disciplines. RC operates on an
// RCMat rather than a Mat, so it is driven through MulRC rather than Mul,
// but shares this enum for display and CLI flag purposes.
type Strategy int

const (
	StrategyNaive Strategy = iota
	StrategySingle
	StrategyBlock
	StrategyRC
)

// AllStrategies lists every strategy, in the order the benchmark driver's
// --strategy all mode runs them.
var AllStrategies = []Strategy{StrategyNaive, StrategySingle, StrategyBlock, StrategyRC}

// String returns the strategy's canonical lowercase name, used as the
// prometheus metric label and the CLI --strategy flag value.
func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategySingle:
		return "single"
	case StrategyBlock:
		return "block"
	case StrategyRC:
		return "rc"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a --strategy flag value; "all" is handled by the
// caller (it is not a single Strategy).
func ParseStrategy(s string) (Strategy, bool) {
	for _, st := range AllStrategies {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

func prometheusTimer(strategy string) func() {
	start := time.Now()
	return func() {
		metrics.SpMVDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	}
}
