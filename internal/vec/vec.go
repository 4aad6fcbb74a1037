// Package vec implements the distributed dense vector: a collectively
// allocated array whose local slab each rank owns and can read without
// communication, and whose arbitrary indices any rank can fetch or store
// through one-sided RMA (spec.md §3 "Vec", §4.3).
package vec

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"math"

	"slaps-go/internal/numeric"
	"slaps-go/internal/partition"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/rdata"
)

// Vec is one rank's view of a distributed dense vector of element type D.
// Every rank constructs its own Vec and calls Allocate collectively; after
// that every rank's Vec can address every other rank's slab (spec.md §3
// invariant: "g is identical on every rank").
type Vec[D numeric.Real] struct {
	world     *pgasrt.World
	rank      int
	part      *partition.Partition
	seg       *pgasrt.Segment[D]
	puts      *pgasrt.Tracker
	allocated bool
}

// New returns an unallocated Vec. Call Allocate collectively before using it.
func New[D numeric.Real]() *Vec[D] {
	return &Vec[D]{}
}

// Allocate is collective: every rank in w must call it with the same n. It
// computes the partition, allocates this rank's local slab, and broadcasts
// every rank's slab handle so that every Vec can address every slab
// without further communication (spec.md §4.3).
func (v *Vec[D]) Allocate(w *pgasrt.World, rank, n int) error {
	if v.allocated {
		return ErrAlreadyAllocated
	}
	if n <= 0 {
		return ErrInvalidSize
	}
	part, err := partition.New(n, w.Size())
	if err != nil {
		return err
	}

	slog.Debug("vec allocate", slog.Int("rank", rank), slog.Int("n", n))
	localSlab := make([]D, part.LocalSize(rank))
	allSlabs := pgasrt.Broadcast(w, rank, localSlab)

	v.world = w
	v.rank = rank
	v.part = part
	v.seg = pgasrt.NewSegment(w, allSlabs)
	v.puts = &pgasrt.Tracker{}
	v.allocated = true
	return nil
}

// Size returns the global vector length N.
func (v *Vec[D]) Size() int { return v.part.Size() }

// LocalSize returns the number of entries this rank owns.
func (v *Vec[D]) LocalSize() int { return v.part.LocalSize(v.rank) }

// LocalRange returns the half-open global index range this rank owns.
func (v *Vec[D]) LocalRange() (start, end int) { return v.part.Range(v.rank) }

// Rank returns this Vec's own rank index within its world.
func (v *Vec[D]) Rank() int { return v.rank }

// SetAll fills the owned slab with v, purely locally (spec.md §4.3 "no
// communication").
func (v *Vec[D]) SetAll(val D) {
	local := v.seg.Local(v.rank)
	for i := range local {
		local[i] = val
	}
}

// Cell returns a remote-cell proxy targeting global index i. It bounds
// checks i, resolves the owning rank through the partitioner, and never
// touches the network on its own (spec.md §4.3 "Indexing").
func (v *Vec[D]) Cell(i int) (*rdata.RData[D], error) {
	if i < 0 || i >= v.part.Size() {
		return nil, ErrIndexOutOfRange
	}
	owner, local := v.part.Owner(i)
	return rdata.New(v.seg, owner, local, i, v.puts), nil
}

// SetWait blocks until every put ever issued through a proxy produced by
// this Vec has completed remotely, then barriers, then resets the
// put-tracker for the next round (spec.md §4.3).
func (v *Vec[D]) SetWait() {
	v.puts.Wait()
	v.world.Barrier(v.rank)
	v.puts = &pgasrt.Tracker{}
}

// LocalArrayWrite returns the owned slab for direct, put-future-bypassing
// writes (spec.md §4.3).
func (v *Vec[D]) LocalArrayWrite() []D { return v.seg.Local(v.rank) }

// LocalArrayRead returns the owned slab for direct reads.
func (v *Vec[D]) LocalArrayRead() []D { return v.seg.Local(v.rank) }

// Copy copies this rank's slab into dst's slab; no cross-rank traffic
// (spec.md §4.3). Sizes must already match.
func (v *Vec[D]) Copy(dst *Vec[D]) error {
	if v.Size() != dst.Size() {
		return ErrSizeMismatch
	}
	copy(dst.LocalArrayWrite(), v.LocalArrayRead())
	return nil
}

// Clone allocates a fresh Vec of the same size on w/rank and copies this
// rank's local slab into it. Like Allocate, this is collective: every rank
// must call Clone in lockstep (spec.md §4.3 "Rule of five").
func (v *Vec[D]) Clone() (*Vec[D], error) {
	dst := New[D]()
	if err := dst.Allocate(v.world, v.rank, v.Size()); err != nil {
		return nil, err
	}
	if err := v.Copy(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReadRangeBegin starts the async half of ReadRange: one rget per owning
// rank overlapping [start, end), composed into a single future. The
// returned handle is exported so a caller (e.g. the Block SpMV strategy)
// can hold it across its own double-buffering loop boundary.
func (v *Vec[D]) ReadRangeBegin(start, end int) (*RangeRead[D], error) {
	if start < 0 || end > v.part.Size() || start > end {
		return nil, ErrInvalidRange
	}
	rr := &RangeRead[D]{start: start, end: end}
	if start == end {
		return rr, nil
	}
	bounds := v.part.Bounds()
	for r := 0; r < v.part.NumRanks(); r++ {
		rs, re := bounds[r], bounds[r+1]
		lo, hi := max(rs, start), min(re, end)
		if lo >= hi {
			continue
		}
		rr.futures = append(rr.futures, rangeFetch[D]{
			globalStart: lo,
			future:      v.seg.GetRange(r, lo-rs, hi-rs),
		})
	}
	return rr, nil
}

// ReadRangeComplete waits on the composed future and scatters every
// fetched value into buf at its (start-relative) position.
func (v *Vec[D]) ReadRangeComplete(rr *RangeRead[D], buf []D) error {
	if len(buf) != rr.end-rr.start {
		return ErrSizeMismatch
	}
	for _, f := range rr.futures {
		vals := f.future.Wait()
		copy(buf[f.globalStart-rr.start:], vals)
	}
	return nil
}

// ReadRange is the synchronous convenience wrapper around
// ReadRangeBegin/ReadRangeComplete: it fills buf (length end-start) with
// global indices [start, end).
func (v *Vec[D]) ReadRange(start, end int, buf []D) error {
	rr, err := v.ReadRangeBegin(start, end)
	if err != nil {
		return err
	}
	return v.ReadRangeComplete(rr, buf)
}

type rangeFetch[D numeric.Real] struct {
	globalStart int
	future      *pgasrt.Future[[]D]
}

// RangeRead is a pending ReadRangeBegin composed future; pass it to
// ReadRangeComplete to block on it and scatter its results.
type RangeRead[D numeric.Real] struct {
	start, end int
	futures    []rangeFetch[D]
}

// Norm is collective: the square root of the sum of |x_i|^2 over the whole
// vector (spec.md §4.3 "norm").
func (v *Vec[D]) Norm() D {
	var sum D
	for _, x := range v.LocalArrayRead() {
		sum += numeric.MagnitudeSquared(x)
	}
	total := pgasrt.AllReduceSum(v.world, v.rank, sum)
	return sqrtD(total)
}

// Dot is collective: the elementwise product of this vector and other,
// summed locally then allreduced (spec.md §4.3 "dot"). It does not
// conjugate the left operand — preserved from the source.
func (v *Vec[D]) Dot(other *Vec[D]) (D, error) {
	if v.Size() != other.Size() {
		return 0, ErrSizeMismatch
	}
	a, b := v.LocalArrayRead(), other.LocalArrayRead()
	var sum D
	for i := range a {
		sum += a[i] * b[i]
	}
	return pgasrt.AllReduceSum(v.world, v.rank, sum), nil
}

// Close drains outstanding puts and barriers, matching the teardown a
// destructor performs in the source (set_wait + barrier before releasing
// the shared allocation; spec.md §4.3 "Rule of five", §5 "Shared resource
// policy"). Every rank must call Close in lockstep.
func (v *Vec[D]) Close() {
	if !v.allocated {
		return
	}
	v.SetWait()
	v.allocated = false
}

func sqrtD[D numeric.Real](v D) D {
	return D(math.Sqrt(float64(v)))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
