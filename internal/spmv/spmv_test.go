package spmv_test

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slaps-go/internal/mat"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/spmv"
	"slaps-go/internal/vec"
)

// run is collective: it spins up p goroutines, one per rank, calling fn
// with that rank's index, and waits for all to return. Every test in this
// file builds its matrix/vectors and drives SpMV entirely inside fn,
// since Vec allocation is collective over the one *pgasrt.World every
// rank's goroutine shares, so all ranks must be live at once.
func run(p int, fn func(rank int)) {
	var wg sync.WaitGroup
	wg.Add(p)
	for r := 0; r < p; r++ {
		go func(rank int) {
			defer wg.Done()
			fn(rank)
		}(r)
	}
	wg.Wait()
}

// buildDiagonal constructs an n x n matrix with A[i][i] = i on every rank
// and a vector x with x[i] = i, both distributed over p ranks.
func buildDiagonal(t *testing.T, w *pgasrt.World, p, n int) ([]*mat.Mat[float64], []*vec.Vec[float64]) {
	t.Helper()
	ms := make([]*mat.Mat[float64], p)
	xs := make([]*vec.Vec[float64], p)
	errs := make([]error, p)
	run(p, func(rank int) {
		m := mat.New[float64]()
		if errs[rank] = m.SetDimensions(w, rank, n, n); errs[rank] != nil {
			return
		}
		start, end := m.LocalRows()
		for i := start; i < end; i++ {
			if errs[rank] = m.SetValue(i, i, float64(i)); errs[rank] != nil {
				return
			}
		}
		if errs[rank] = m.Setup(1, 1); errs[rank] != nil {
			return
		}
		ms[rank] = m

		x := vec.New[float64]()
		if errs[rank] = x.Allocate(w, rank, n); errs[rank] != nil {
			return
		}
		xstart, _ := x.LocalRange()
		local := x.LocalArrayWrite()
		for i := range local {
			local[i] = float64(xstart + i)
		}
		xs[rank] = x
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs[r], "rank %d", r)
	}
	return ms, xs
}

func TestNaiveDiagonalMatrixSquaresEveryEntry(t *testing.T) {
	const p, n = 3, 15
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)
	ms, xs := buildDiagonal(t, w, p, n)

	ys := make([]*vec.Vec[float64], p)
	errs := make([]error, p)
	run(p, func(rank int) {
		y := vec.New[float64]()
		if errs[rank] = y.Allocate(w, rank, n); errs[rank] != nil {
			return
		}
		errs[rank] = spmv.Mul(spmv.StrategyNaive, ms[rank], xs[rank], y)
		ys[rank] = y
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs[r])
		start, _ := ys[r].LocalRange()
		for i, v := range ys[r].LocalArrayRead() {
			global := start + i
			assert.Equal(t, float64(global*global), v, "i=%d", global)
		}
	}
}

func TestIdentityMatrixIsAnIdentityOperator(t *testing.T) {
	const p, n = 2, 12
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	ms := make([]*mat.Mat[float64], p)
	xs := make([]*vec.Vec[float64], p)
	errs := make([]error, p)
	run(p, func(rank int) {
		m := mat.New[float64]()
		if errs[rank] = m.SetDimensions(w, rank, n, n); errs[rank] != nil {
			return
		}
		start, end := m.LocalRows()
		for i := start; i < end; i++ {
			if errs[rank] = m.SetValue(i, i, 1); errs[rank] != nil {
				return
			}
		}
		if errs[rank] = m.Setup(1, 0); errs[rank] != nil {
			return
		}
		ms[rank] = m

		x := vec.New[float64]()
		if errs[rank] = x.Allocate(w, rank, n); errs[rank] != nil {
			return
		}
		start2, _ := x.LocalRange()
		local := x.LocalArrayWrite()
		for i := range local {
			local[i] = float64(start2 + i + 1)
		}
		xs[rank] = x
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs[r])
	}

	ys := make([]*vec.Vec[float64], p)
	errs2 := make([]error, p)
	run(p, func(rank int) {
		y := vec.New[float64]()
		if errs2[rank] = y.Allocate(w, rank, n); errs2[rank] != nil {
			return
		}
		errs2[rank] = spmv.Mul(spmv.StrategyNaive, ms[rank], xs[rank], y)
		ys[rank] = y
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs2[r])
		assert.Equal(t, xs[r].LocalArrayRead(), ys[r].LocalArrayRead())
	}
}

func TestBandMatrixMatchesClosedForm(t *testing.T) {
	const p, n, band = 3, 15, 4
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	ms := make([]*mat.Mat[float64], p)
	xs := make([]*vec.Vec[float64], p)
	errs := make([]error, p)
	run(p, func(rank int) {
		m := mat.New[float64]()
		if errs[rank] = m.SetDimensions(w, rank, n, n); errs[rank] != nil {
			return
		}
		start, end := m.LocalRows()
		for i := start; i < end; i++ {
			if errs[rank] = m.SetValue(i, i, 1); errs[rank] != nil {
				return
			}
			other := (i + band) % n
			if errs[rank] = m.SetValue(i, other, 1); errs[rank] != nil {
				return
			}
		}
		if errs[rank] = m.Setup(2, 2); errs[rank] != nil {
			return
		}
		ms[rank] = m

		x := vec.New[float64]()
		if errs[rank] = x.Allocate(w, rank, n); errs[rank] != nil {
			return
		}
		xstart, _ := x.LocalRange()
		local := x.LocalArrayWrite()
		for i := range local {
			local[i] = float64(xstart + i)
		}
		xs[rank] = x
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs[r])
	}

	ys := make([]*vec.Vec[float64], p)
	errs2 := make([]error, p)
	run(p, func(rank int) {
		y := vec.New[float64]()
		if errs2[rank] = y.Allocate(w, rank, n); errs2[rank] != nil {
			return
		}
		errs2[rank] = spmv.Mul(spmv.StrategyNaive, ms[rank], xs[rank], y)
		ys[rank] = y
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs2[r])
		start, _ := ys[r].LocalRange()
		for i, v := range ys[r].LocalArrayRead() {
			global := start + i
			want := float64(global + (global+band)%n)
			assert.Equal(t, want, v, "i=%d", global)
		}
	}
}

func TestCSRStrategiesAgreeOnDiagonalMatrix(t *testing.T) {
	const p, n = 4, 37
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)
	ms, xs := buildDiagonal(t, w, p, n)

	for _, strat := range []spmv.Strategy{spmv.StrategyNaive, spmv.StrategySingle, spmv.StrategyBlock} {
		ys := make([]*vec.Vec[float64], p)
		errs := make([]error, p)
		run(p, func(rank int) {
			y := vec.New[float64]()
			if errs[rank] = y.Allocate(w, rank, n); errs[rank] != nil {
				return
			}
			errs[rank] = spmv.Mul(strat, ms[rank], xs[rank], y)
			ys[rank] = y
		})
		for r := 0; r < p; r++ {
			require.NoError(t, errs[r], "strategy %s rank %d", strat, r)
			start, _ := ys[r].LocalRange()
			for i, v := range ys[r].LocalArrayRead() {
				global := start + i
				assert.InDelta(t, float64(global*global), v, 1e-9, "strategy %s i=%d", strat, global)
			}
		}
	}
}

func TestRCMatchesCSRStrategiesOnTheSameMatrix(t *testing.T) {
	const p, n, band = 3, 21, 5
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	csr := make([]*mat.Mat[float64], p)
	rc := make([]*mat.RCMat[float64], p)
	xs := make([]*vec.Vec[float64], p)
	errs := make([]error, p)
	run(p, func(rank int) {
		cm := mat.New[float64]()
		rm := mat.NewRCMat[float64]()
		if errs[rank] = cm.SetDimensions(w, rank, n, n); errs[rank] != nil {
			return
		}
		if errs[rank] = rm.SetDimensions(w, rank, n, n); errs[rank] != nil {
			return
		}
		start, end := cm.LocalRows()
		for i := start; i < end; i++ {
			other := (i + band) % n
			for _, entry := range [][2]int{{i, i}, {i, other}} {
				if errs[rank] = cm.SetValue(entry[0], entry[1], 2); errs[rank] != nil {
					return
				}
				if errs[rank] = rm.SetValue(entry[0], entry[1], 2); errs[rank] != nil {
					return
				}
			}
		}
		if errs[rank] = cm.Setup(2, 2); errs[rank] != nil {
			return
		}
		if errs[rank] = rm.Setup(0); errs[rank] != nil {
			return
		}
		csr[rank], rc[rank] = cm, rm

		x := vec.New[float64]()
		if errs[rank] = x.Allocate(w, rank, n); errs[rank] != nil {
			return
		}
		xstart, _ := x.LocalRange()
		local := x.LocalArrayWrite()
		for i := range local {
			local[i] = float64(xstart + i + 1)
		}
		xs[rank] = x
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs[r])
	}

	yCSR := make([]*vec.Vec[float64], p)
	yRC := make([]*vec.Vec[float64], p)
	errs3 := make([]error, p)
	run(p, func(rank int) {
		a := vec.New[float64]()
		if errs3[rank] = a.Allocate(w, rank, n); errs3[rank] != nil {
			return
		}
		if errs3[rank] = spmv.Mul(spmv.StrategyNaive, csr[rank], xs[rank], a); errs3[rank] != nil {
			return
		}
		yCSR[rank] = a

		b := vec.New[float64]()
		if errs3[rank] = b.Allocate(w, rank, n); errs3[rank] != nil {
			return
		}
		errs3[rank] = spmv.MulRC(rc[rank], xs[rank], b)
		yRC[rank] = b
	})
	for r := 0; r < p; r++ {
		require.NoError(t, errs3[r])
		assert.InDeltaSlice(t, yCSR[r].LocalArrayRead(), yRC[r].LocalArrayRead(), 1e-9, "rank %d", r)
	}
}

func TestMulRejectsDimensionMismatch(t *testing.T) {
	w, err := pgasrt.NewWorld(1)
	require.NoError(t, err)
	m := mat.New[float64]()
	require.NoError(t, m.SetDimensions(w, 0, 5, 5))
	require.NoError(t, m.Setup(1, 1))

	x := vec.New[float64]()
	require.NoError(t, x.Allocate(w, 0, 3))
	y := vec.New[float64]()
	require.NoError(t, y.Allocate(w, 0, 5))

	assert.ErrorIs(t, spmv.Mul(spmv.StrategyNaive, m, x, y), mat.ErrDimensionMismatch)
}

func TestSingleAndBlockRequireSetup(t *testing.T) {
	w, err := pgasrt.NewWorld(1)
	require.NoError(t, err)
	m := mat.New[float64]()
	require.NoError(t, m.SetDimensions(w, 0, 5, 5))

	x := vec.New[float64]()
	require.NoError(t, x.Allocate(w, 0, 5))
	y := vec.New[float64]()
	require.NoError(t, y.Allocate(w, 0, 5))

	assert.ErrorIs(t, spmv.Single(m, x, y), spmv.ErrNotSetUp)
	assert.ErrorIs(t, spmv.Block(m, x, y), spmv.ErrNotSetUp)
}
