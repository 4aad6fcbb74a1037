// Package mat implements the sparse matrix base and CSR/RCMat assembly:
// dimensions, COO accumulation, and the split into per-row local/remote
// adjacency lists that the SpMV strategies walk (spec.md §3 "Mat", §4.4).
package mat

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"slaps-go/internal/numeric"
	"slaps-go/internal/partition"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/vec"
)

// Entry is one (column, value) cell in a CSR adjacency row. Col is in
// local (diagonal-block-relative) coordinates for an entry stored in a
// Local row and in global coordinates for an entry stored in a Remote row
// (spec.md §3 "Mat" split rule).
type Entry[D numeric.Real] struct {
	Col int
	Val D
}

// cooEntry is one unordered insert accumulated before Setup.
type cooEntry[D numeric.Real] struct {
	row, col int
	val      D
}

// base holds the bookkeeping shared by Mat (CSR) and RCMat (column-
// oriented): dimensions, row/column partition, and the pre-setup COO
// buffer (spec.md §3 "Mat" before-setup state).
type base[D numeric.Real] struct {
	rank    int
	rowPart *partition.Partition
	colPart *partition.Partition
	m, n    int
	cstart  int
	cend    int
	coo     []cooEntry[D]
	dimsSet bool
	setUp   bool
}

func (b *base[D]) setDimensions(w *pgasrt.World, rank, m, n int) error {
	if b.dimsSet {
		return ErrDimensionsAlreadySet
	}
	if m <= 0 || n <= 0 {
		return ErrInvalidDimensions
	}
	rowPart, err := partition.New(m, w.Size())
	if err != nil {
		return err
	}
	colPart, err := partition.New(n, w.Size())
	if err != nil {
		return err
	}
	cstart, cend := colPart.Range(rank)

	b.rank = rank
	b.rowPart = rowPart
	b.colPart = colPart
	b.m, b.n = m, n
	b.cstart, b.cend = cstart, cend
	b.dimsSet = true
	return nil
}

// LocalRows returns the half-open local row range [start, end) this rank owns.
func (b *base[D]) LocalRows() (start, end int) { return b.rowPart.Range(b.rank) }

// DiagCols returns the half-open column range of the diagonal block: the
// columns owned by the same rank as this rank's row band.
func (b *base[D]) DiagCols() (start, end int) { return b.cstart, b.cend }

// LocalRowsSize returns the number of rows this rank owns.
func (b *base[D]) LocalRowsSize() int { return b.rowPart.LocalSize(b.rank) }

// Rows returns the global row count M.
func (b *base[D]) Rows() int { return b.m }

// Cols returns the global column count N.
func (b *base[D]) Cols() int { return b.n }

// checkDimensions validates x.Size()==N, y.Size()==M for an A*x=y SpMV.
func (b *base[D]) checkDimensions(x, y *vec.Vec[D]) error {
	if x.Size() != b.n || y.Size() != b.m {
		return ErrDimensionMismatch
	}
	return nil
}

// setValue appends (row, col, v) to the COO buffer; row must lie in this
// rank's local row band and col in [0, N) (spec.md §3 "Invariants").
// set_value is additive: duplicate (row, col) inserts are not coalesced
// and will be summed by SpMV (spec.md §9).
func (b *base[D]) setValue(row, col int, v D) error {
	if !b.dimsSet {
		return ErrDimensionsNotSet
	}
	rstart, rend := b.rowPart.Range(b.rank)
	if row < rstart || row >= rend {
		return ErrRowOutOfRange
	}
	if col < 0 || col >= b.n {
		return ErrColOutOfRange
	}
	b.coo = append(b.coo, cooEntry[D]{row: row, col: col, val: v})
	return nil
}

// Owner returns the rank that owns global column c, per this matrix's
// column partition — the same partition peers use to answer Vec[c] reads.
func (b *base[D]) Owner(c int) int {
	r, _ := b.colPart.Owner(c)
	return r
}

// sortRows sorts each row's adjacency ascending by column.
func sortRows[D numeric.Real](rows [][]Entry[D]) {
	for i := range rows {
		sort.Slice(rows[i], func(a, b int) bool { return rows[i][a].Col < rows[i][b].Col })
	}
}

// peerSet collects the distinct ranks referenced by a set of remote-row
// adjacency lists, for diagnostics (e.g. reporting how many peers an SpMV
// actually talks to).
func peerSet[D numeric.Real](b *base[D], remote [][]Entry[D]) mapset.Set[int] {
	peers := mapset.NewThreadUnsafeSet[int]()
	for _, row := range remote {
		for _, e := range row {
			peers.Add(b.Owner(e.Col))
		}
	}
	return peers
}
