package mat

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"sort"

	"slaps-go/internal/numeric"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/vec"
)

// RowValue is one (local_row, value) contribution within an RCMat column
// group (spec.md §3 "RCMat").
type RowValue[D numeric.Real] struct {
	LocalRow int
	Val      D
}

// column is one RCMat adjacency group: a global column and the local rows
// it contributes to.
type column[D numeric.Real] struct {
	Col     int
	Entries []RowValue[D]
}

// RCMat is the column-oriented variant of Mat: same row partition, but
// after Setup it groups entries by global column instead of by row, so
// the RC SpMV strategy issues one remote fetch per column and reuses it
// across every nonzero in that column (spec.md §3 "RCMat", §4.5.d).
type RCMat[D numeric.Real] struct {
	base[D]
	cols []column[D]
}

// NewRCMat returns a column-oriented matrix with no dimensions set.
func NewRCMat[D numeric.Real]() *RCMat[D] {
	return &RCMat[D]{}
}

// SetDimensions is collective; see Mat.SetDimensions.
func (m *RCMat[D]) SetDimensions(w *pgasrt.World, rank, rows, cols int) error {
	return m.setDimensions(w, rank, rows, cols)
}

// CheckDimensions validates x.Size()==N and y.Size()==M for y = A*x.
func (m *RCMat[D]) CheckDimensions(x, y *vec.Vec[D]) error {
	return m.checkDimensions(x, y)
}

// SetValue appends (row, col, v) to the pre-setup COO buffer.
func (m *RCMat[D]) SetValue(row, col int, v D) error {
	return m.setValue(row, col, v)
}

// IsSetUp reports whether Setup has completed.
func (m *RCMat[D]) IsSetUp() bool { return m.setUp }

// Setup sorts the COO buffer by the key ((col+cstart) mod N, row) — the
// modulo shift staggers which rank each peer fetches from first during an
// SpMV, so rank 0 doesn't stampede every peer's rank-0 column at once —
// then groups consecutive equal-column triples into column groups (spec.md
// §4.4 "For RCMat"). The comparator uses the shifted key consistently for
// both its less-than and its tie-break, fixing the mixed-key comparator
// bug noted in spec.md §9.
func (m *RCMat[D]) Setup(capacityHint int) error {
	if !m.dimsSet {
		return ErrDimensionsNotSet
	}
	if m.setUp {
		return ErrAlreadySetUp
	}

	rstart, _ := m.LocalRows()
	key := func(col int) int { return (col + m.cstart) % m.n }

	sort.Slice(m.coo, func(i, j int) bool {
		ki, kj := key(m.coo[i].col), key(m.coo[j].col)
		if ki != kj {
			return ki < kj
		}
		return m.coo[i].row < m.coo[j].row
	})

	m.cols = nil
	if capacityHint > 0 {
		m.cols = make([]column[D], 0, capacityHint)
	}
	for _, t := range m.coo {
		if n := len(m.cols); n > 0 && m.cols[n-1].Col == t.col {
			m.cols[n-1].Entries = append(m.cols[n-1].Entries, RowValue[D]{LocalRow: t.row - rstart, Val: t.val})
			continue
		}
		m.cols = append(m.cols, column[D]{
			Col:     t.col,
			Entries: []RowValue[D]{{LocalRow: t.row - rstart, Val: t.val}},
		})
	}

	m.coo = nil
	m.setUp = true
	return nil
}

// NumColumns returns the number of distinct stored column groups.
func (m *RCMat[D]) NumColumns() int { return len(m.cols) }

// Column returns the i-th stored column group's global column index and
// its (local_row, value) entries, in the stagger order established by
// Setup.
func (m *RCMat[D]) Column(i int) (col int, entries []RowValue[D]) {
	return m.cols[i].Col, m.cols[i].Entries
}
