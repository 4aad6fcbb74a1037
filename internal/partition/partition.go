// Package partition implements the deterministic, collectively-agreed
// global-index-to-rank mapping every other package in this library builds
// on (spec.md §3 "Partition", §4.1).
package partition

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "github.com/pkg/errors"

// ErrInvalidSize is returned when N <= 0 is passed to New.
var ErrInvalidSize = errors.New("partition: global size must be positive")

// ErrInvalidRankCount is returned when P <= 0 is passed to New.
var ErrInvalidRankCount = errors.New("partition: rank count must be positive")

// Partition is the pure, total mapping between a global index range
// [0, N) and the P ranks that own contiguous bands of it, matching the
// PETSc PetscSplitOwnership convention: equal base share, with the
// remainder distributed one-each to the lowest-numbered ranks.
type Partition struct {
	n      int
	p      int
	bounds []int // length p+1, bounds[r]..bounds[r+1) is rank r's band
	base   int   // floor(n/p)
	split  int   // (base+1) * (n mod p), the boundary between "wide" and "narrow" ranks
	remCnt int   // n mod p, number of ranks with one extra element
}

// New computes the partition of N global indices across P ranks. It is a
// pure function of (N, P): every rank that calls New with the same
// arguments computes bit-identical bounds, which is what makes it safe to
// call independently on every rank instead of broadcasting the result
// (spec.md §4.1 "partition must... be a pure collective function").
func New(n, p int) (*Partition, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	if p <= 0 {
		return nil, ErrInvalidRankCount
	}

	base := n / p
	remCnt := n % p
	bounds := make([]int, p+1)
	for r := 0; r < p; r++ {
		share := base
		if r < remCnt {
			share++
		}
		bounds[r+1] = bounds[r] + share
	}

	return &Partition{
		n:      n,
		p:      p,
		bounds: bounds,
		base:   base,
		split:  (base + 1) * remCnt,
		remCnt: remCnt,
	}, nil
}

// Size returns N, the global index count.
func (pt *Partition) Size() int { return pt.n }

// NumRanks returns P, the rank count.
func (pt *Partition) NumRanks() int { return pt.p }

// Bounds returns the full p[0..P] boundary sequence; p[r]=Bounds()[r].
func (pt *Partition) Bounds() []int { return pt.bounds }

// Range returns the half-open global index range [start, end) owned by rank.
func (pt *Partition) Range(rank int) (start, end int) {
	return pt.bounds[rank], pt.bounds[rank+1]
}

// LocalSize returns the number of global indices rank owns.
func (pt *Partition) LocalSize(rank int) int {
	return pt.bounds[rank+1] - pt.bounds[rank]
}

// Owner returns the rank owning global index i, and the local offset of i
// within that rank's band. Both branches are O(1) and branch-predictable,
// per spec.md §3's exact inverse-map formula:
//
//	split = (base+1) * (N mod P)
//	i < split  => rank = i / (base+1)
//	i >= split => rank = (N mod P) + (i-split) / base
func (pt *Partition) Owner(i int) (rank int, localOffset int) {
	if i < pt.split {
		rank = i / (pt.base + 1)
	} else {
		rank = pt.remCnt
		if pt.base > 0 {
			rank += (i - pt.split) / pt.base
		}
	}
	return rank, i - pt.bounds[rank]
}
