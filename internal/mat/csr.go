package mat

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	mapset "github.com/deckarep/golang-set/v2"

	"slaps-go/internal/numeric"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/vec"
)

// Mat is a row-partitioned sparse matrix stored, after Setup, as per-row
// CSR adjacency split into a diagonal block (Local, columns in
// diagonal-relative coordinates, readable without communication) and an
// off-diagonal remainder (Remote, columns in global coordinates, read
// through Vec's RMA proxy). See spec.md §3 "Mat", §4.4.
type Mat[D numeric.Real] struct {
	base[D]
	local  [][]Entry[D]
	remote [][]Entry[D]
}

// New returns a matrix with no dimensions set; call SetDimensions then
// SetValue* then Setup before using it in SpMV.
func New[D numeric.Real]() *Mat[D] {
	return &Mat[D]{}
}

// SetDimensions is collective: every rank must call it with the same
// (M, N). It computes the row and column partitions (spec.md §4.4).
func (m *Mat[D]) SetDimensions(w *pgasrt.World, rank, rows, cols int) error {
	return m.setDimensions(w, rank, rows, cols)
}

// CheckDimensions validates x.Size()==N and y.Size()==M for y = A*x.
func (m *Mat[D]) CheckDimensions(x, y *vec.Vec[D]) error {
	return m.checkDimensions(x, y)
}

// SetValue appends (row, col, v) to the pre-setup COO buffer.
func (m *Mat[D]) SetValue(row, col int, v D) error {
	return m.setValue(row, col, v)
}

// IsSetUp reports whether Setup has completed.
func (m *Mat[D]) IsSetUp() bool { return m.setUp }

// Setup is single-shot and terminal: it distributes every COO triple into
// Local (diagonal block, column remapped to cstart-relative) or Remote
// (off-diagonal, column kept global), sorts each row ascending by column,
// then discards the COO buffer (spec.md §4.4 "Assembly"). dnz and onz are
// per-row capacity hints for the diagonal and off-diagonal lists.
func (m *Mat[D]) Setup(dnz, onz int) error {
	if !m.dimsSet {
		return ErrDimensionsNotSet
	}
	if m.setUp {
		return ErrAlreadySetUp
	}

	rstart, _ := m.LocalRows()
	rows := m.LocalRowsSize()
	m.local = make([][]Entry[D], rows)
	m.remote = make([][]Entry[D], rows)
	for i := range m.local {
		if dnz > 0 {
			m.local[i] = make([]Entry[D], 0, dnz)
		}
		if onz > 0 {
			m.remote[i] = make([]Entry[D], 0, onz)
		}
	}

	for _, t := range m.coo {
		lr := t.row - rstart
		if t.col >= m.cstart && t.col < m.cend {
			m.local[lr] = append(m.local[lr], Entry[D]{Col: t.col - m.cstart, Val: t.val})
		} else {
			m.remote[lr] = append(m.remote[lr], Entry[D]{Col: t.col, Val: t.val})
		}
	}

	sortRows(m.local)
	sortRows(m.remote)
	m.coo = nil
	m.setUp = true
	return nil
}

// LocalRow returns row i's diagonal-block adjacency (columns relative to
// DiagCols()'s start), sorted ascending by column. Before Setup every row
// is empty.
func (m *Mat[D]) LocalRow(i int) []Entry[D] {
	if !m.setUp {
		return nil
	}
	return m.local[i]
}

// RemoteRow returns row i's off-diagonal adjacency (global columns),
// sorted ascending by column. Before Setup every row is empty.
func (m *Mat[D]) RemoteRow(i int) []Entry[D] {
	if !m.setUp {
		return nil
	}
	return m.remote[i]
}

// PeerSet returns the distinct ranks this matrix's remote adjacency will
// address during an SpMV, for diagnostics and benchmark reporting.
func (m *Mat[D]) PeerSet() mapset.Set[int] {
	return peerSet(&m.base, m.remote)
}
