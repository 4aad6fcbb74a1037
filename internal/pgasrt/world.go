package pgasrt

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"slaps-go/internal/metrics"
	"slaps-go/internal/numeric"
)

// World is the collectively-shared handle to a simulated PGAS job: a fixed
// rank count plus the single rendezvous primitive every collective
// (Barrier, Broadcast, AllReduceSum) is built from.
//
// Every rank-side object (Vec, RData) holds a *World and its own rank
// index; World itself carries no per-rank state beyond the exchange slots,
// so it is safe to share the same *World across every rank's Vec/Mat
// instances.
type World struct {
	size int

	mu     sync.Mutex
	cond   *sync.Cond
	gen    int
	count  int
	slots  []any
	result []any
}

// NewWorld constructs a World for size ranks. size must be positive
// (spec.md §4.1).
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, ErrInvalidWorldSize
	}
	w := &World{size: size, slots: make([]any, size)}
	w.cond = sync.NewCond(&w.mu)
	return w, nil
}

// Size returns the number of ranks (P) in the world.
func (w *World) Size() int { return w.size }

// exchange is the cyclic-barrier-with-payload every collective in this
// package reduces to: rank contributes value and blocks until all Size()
// ranks have contributed for this round, then every caller receives the
// same rank-ordered snapshot of contributions.
func (w *World) exchange(rank int, value any) []any {
	w.mu.Lock()
	defer w.mu.Unlock()
	gen := w.gen
	w.slots[rank] = value
	w.count++
	if w.count == w.size {
		snap := append([]any(nil), w.slots...)
		w.result = snap
		w.count = 0
		w.gen++
		w.cond.Broadcast()
		return snap
	}
	for gen == w.gen {
		w.cond.Wait()
	}
	return w.result
}

// Barrier blocks the calling rank until every rank has entered (spec.md
// §4.3 Vec.set_wait, §5 "Suspension points").
func (w *World) Barrier(rank int) {
	logCollective("barrier", rank)
	metrics.Collectives.WithLabelValues("barrier").Inc()
	w.exchange(rank, struct{}{})
}

// Broadcast exchanges one value of type T per rank and returns the full,
// rank-ordered slice to every caller. Vec.Allocate uses this to distribute
// the per-rank slab handles so that g is identical on every rank (spec.md
// §3 Vec invariants).
func Broadcast[T any](w *World, rank int, value T) []T {
	logCollective("broadcast", rank)
	metrics.Collectives.WithLabelValues("broadcast").Inc()
	raw := w.exchange(rank, value)
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = v.(T)
	}
	return out
}

// AllReduceSum combines one value per rank with addition and returns the
// sum to every rank (spec.md §4.3 Vec.norm, Vec.dot).
func AllReduceSum[D numeric.Real](w *World, rank int, value D) D {
	logCollective("allreduce", rank)
	metrics.Collectives.WithLabelValues("allreduce").Inc()
	raw := w.exchange(rank, value)
	var sum D
	for _, v := range raw {
		sum += v.(D)
	}
	return sum
}

// Collective runs fn once per rank, each on its own goroutine, and waits
// for all of them to return. It is the driver every caller that needs to
// run an entire rank-parallel program (not just one exchange) should use
// instead of a hand-rolled sync.WaitGroup plus error channel: the first
// non-nil error is returned once every goroutine has returned. A rank that
// returns early does not release peers waiting for it in a collective;
// those peers keep waiting, and Collective does not return.
func (w *World) Collective(fn func(rank int) error) error {
	g := new(errgroup.Group)
	for r := 0; r < w.size; r++ {
		rank := r
		g.Go(func() error {
			return fn(rank)
		})
	}
	return g.Wait()
}

func logCollective(kind string, rank int) {
	slog.Debug("collective enter", slog.String("kind", kind), slog.Int("rank", rank))
}
