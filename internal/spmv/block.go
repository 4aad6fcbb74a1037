package spmv

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"slaps-go/internal/mat"
	"slaps-go/internal/numeric"
	"slaps-go/internal/vec"
)

// blockSize is the contiguous chunk width Block sweeps x with (spec.md
// §4.5.c "B = 2048").
const blockSize = 2048

func chunkBounds(start, n int) (end int) {
	end = start + blockSize
	if end > n {
		end = n
	}
	return end
}

// Block applies y += A*x by sweeping x's global index range left to
// right in double-buffered contiguous chunks: while one chunk's rows are
// being multiplied, the next chunk's fetch is already in flight. Each row
// keeps its own forward-only cursor into its sorted Remote adjacency,
// since every row's remote columns are visited in exactly one pass over
// the whole sweep (spec.md §4.5.c). Unlike the source, rowStarts is sized
// to LocalRowsSize rather than the global row count M (spec.md §9).
func Block[D numeric.Real](m *mat.Mat[D], x, y *vec.Vec[D]) error {
	if !m.IsSetUp() {
		return ErrNotSetUp
	}
	if err := m.CheckDimensions(x, y); err != nil {
		return err
	}
	timer := prometheusTimer("block")
	defer timer()

	n := x.Size()
	rowStarts := make([]int, m.LocalRowsSize())

	firstEnd := chunkBounds(0, n)
	pending, err := x.ReadRangeBegin(0, firstEnd)
	if err != nil {
		return err
	}

	mulLocal(m, x, y)

	yLocal := y.LocalArrayWrite()
	start := 0
	buf := make([]D, firstEnd)
	if err := x.ReadRangeComplete(pending, buf); err != nil {
		return err
	}

	for {
		windowEnd := start + len(buf)
		haveNext := windowEnd < n

		var nextPending *vec.RangeRead[D]
		var nextBuf []D
		if haveNext {
			nextEnd := chunkBounds(windowEnd, n)
			nextBuf = make([]D, nextEnd-windowEnd)
			p, err := x.ReadRangeBegin(windowEnd, nextEnd)
			if err != nil {
				return err
			}
			nextPending = p
		}

		for i := range yLocal {
			row := m.RemoteRow(i)
			for rowStarts[i] < len(row) && row[rowStarts[i]].Col < windowEnd {
				e := row[rowStarts[i]]
				yLocal[i] += e.Val * buf[e.Col-start]
				rowStarts[i]++
			}
		}

		if !haveNext {
			break
		}
		if err := x.ReadRangeComplete(nextPending, nextBuf); err != nil {
			return err
		}
		start = windowEnd
		buf = nextBuf
	}
	return nil
}
