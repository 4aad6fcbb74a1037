// Package rdata implements RData, the first-class remote-cell proxy that
// lets callers name one remote vector entry without exposing the PGAS
// substrate directly (spec.md §4.2).
package rdata

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"github.com/pkg/errors"

	"slaps-go/internal/numeric"
	"slaps-go/internal/pgasrt"
)

// ErrReadOnly is returned by Assign when the proxy was constructed without
// a reference to the parent Vec's put-future (spec.md §4.2 "Requires the
// put-future reference was provided; otherwise this is a precondition
// violation").
var ErrReadOnly = errors.New("rdata: assign on a read-only proxy")

// RData names one remote cell: a segment, the rank and local offset within
// it, and the global address used only for Address()/debugging. It is
// rebindable via Update and is meant to be produced by Vec's indexing
// operator and consumed within one logical SpMV iteration (spec.md §4.2
// "Lifetime").
type RData[D numeric.Real] struct {
	seg     *pgasrt.Segment[D]
	puts    *pgasrt.Tracker // nil => read-only
	rank    int
	local   int
	addr    int
	pending *pgasrt.Future[D]
	fetched bool
}

// New constructs a proxy naming segment slot (rank, local), with global
// address addr for Address(). puts may be nil, which makes the proxy
// read-only: Assign will fail with ErrReadOnly.
func New[D numeric.Real](seg *pgasrt.Segment[D], rank, local, addr int, puts *pgasrt.Tracker) *RData[D] {
	return &RData[D]{seg: seg, puts: puts, rank: rank, local: local, addr: addr}
}

// Prefetch starts an async remote get and records its future. Calling it
// again before Get() discards the previous in-flight get; the last call
// wins (spec.md §4.2 "Idempotent... repeated calls... start fresh gets").
func (r *RData[D]) Prefetch() {
	r.pending = r.seg.Prefetch(r.rank, r.local)
	r.fetched = true
}

// Get returns the cell's value, starting a get now if Prefetch was not
// already called, and blocking until the value arrives.
func (r *RData[D]) Get() D {
	if !r.fetched {
		r.pending = r.seg.Get(r.rank, r.local)
		r.fetched = true
	}
	return r.pending.Wait()
}

// Assign issues an async remote put and folds its completion future into
// the parent Vec's put-tracker, so a single Vec.SetWait drains every put
// ever issued through any proxy the Vec produced (spec.md §4.2
// "Rationale"). It returns ErrReadOnly if the proxy was built without a
// tracker.
func (r *RData[D]) Assign(v D) error {
	if r.puts == nil {
		return ErrReadOnly
	}
	r.puts.Track(r.seg.Put(r.rank, r.local, v))
	return nil
}

// Update rebinds the proxy to a new segment slot and clears the fetched
// flag, so a subsequent Prefetch/Get targets the new cell.
func (r *RData[D]) Update(rank, local, addr int) {
	r.rank = rank
	r.local = local
	r.addr = addr
	r.fetched = false
	r.pending = nil
}

// Address returns the global address this proxy currently names.
func (r *RData[D]) Address() int { return r.addr }
