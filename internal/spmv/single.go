package spmv

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"slaps-go/internal/mat"
	"slaps-go/internal/numeric"
	"slaps-go/internal/rdata"
	"slaps-go/internal/vec"
)

// prefetchWindow is the ring buffer depth for the Single and RC strategies
// (spec.md §4.5.b "W = 2048").
const prefetchWindow = 2048

// remoteCursor walks a matrix's Remote adjacency in row-major order,
// skipping empty rows, per spec.md §4.5.b's seek_next helper.
type remoteCursor struct{ row, idx int }

// seekNext advances the cursor by one remote entry, skipping past rows
// whose remote list is exhausted (spec.md §4.5.b "seek_next").
func seekNext[D numeric.Real](m *mat.Mat[D], c remoteCursor) remoteCursor {
	c.idx++
	for c.row < m.LocalRowsSize() && c.idx >= len(m.RemoteRow(c.row)) {
		c.row++
		c.idx = 0
	}
	return c
}

// firstRemote returns the cursor at the first remote entry in row-major
// order, or a cursor with row==LocalRowsSize() if there are none.
func firstRemote[D numeric.Real](m *mat.Mat[D]) remoteCursor {
	return seekNext(m, remoteCursor{row: 0, idx: -1})
}

type ringSlot[D numeric.Real] struct {
	cell *rdata.RData[D]
	row  int
	val  D
}

// Single applies y += A*x with a fixed-depth pipeline over remote
// nonzeros: the local phase runs while up to prefetchWindow remote gets
// are already in flight, then a second row-major pass drains the ring
// buffer one slot at a time, refilling behind it until the remote
// adjacency is exhausted (spec.md §4.5.b).
func Single[D numeric.Real](m *mat.Mat[D], x, y *vec.Vec[D]) error {
	if !m.IsSetUp() {
		return ErrNotSetUp
	}
	if err := m.CheckDimensions(x, y); err != nil {
		return err
	}
	timer := prometheusTimer("single")
	defer timer()

	localRows := m.LocalRowsSize()
	ring := make([]ringSlot[D], prefetchWindow)

	write := firstRemote(m)
	filled := 0
	for filled < prefetchWindow && write.row < localRows {
		entry := m.RemoteRow(write.row)[write.idx]
		cell, err := x.Cell(entry.Col)
		if err != nil {
			return err
		}
		cell.Prefetch()
		ring[filled%prefetchWindow] = ringSlot[D]{cell: cell, row: write.row, val: entry.Val}
		filled++
		write = seekNext(m, write)
	}

	mulLocal(m, x, y)

	yLocal := y.LocalArrayWrite()
	for consumed := 0; consumed < filled; consumed++ {
		slot := ring[consumed%prefetchWindow]
		yLocal[slot.row] += slot.val * slot.cell.Get()

		if write.row < localRows {
			entry := m.RemoteRow(write.row)[write.idx]
			cell, err := x.Cell(entry.Col)
			if err != nil {
				return err
			}
			cell.Prefetch()
			ring[filled%prefetchWindow] = ringSlot[D]{cell: cell, row: write.row, val: entry.Val}
			filled++
			write = seekNext(m, write)
		}
	}
	return nil
}
