package pgasrt_test

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slaps-go/internal/pgasrt"
)

func TestNewWorldRejectsNonPositiveSize(t *testing.T) {
	_, err := pgasrt.NewWorld(0)
	assert.ErrorIs(t, err, pgasrt.ErrInvalidWorldSize)

	_, err = pgasrt.NewWorld(-3)
	assert.ErrorIs(t, err, pgasrt.ErrInvalidWorldSize)
}

func TestBarrierReleasesAllRanksTogether(t *testing.T) {
	const p = 5
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(p)
	reached := make([]bool, p)
	var mu sync.Mutex
	for r := 0; r < p; r++ {
		go func(rank int) {
			defer wg.Done()
			w.Barrier(rank)
			mu.Lock()
			reached[rank] = true
			mu.Unlock()
		}(r)
	}
	wg.Wait()
	for r := 0; r < p; r++ {
		assert.True(t, reached[r], "rank %d never observed past barrier", r)
	}
}

func TestBroadcastDeliversIdenticalSliceToEveryRank(t *testing.T) {
	const p = 4
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	results := make([][]int, p)
	var wg sync.WaitGroup
	wg.Add(p)
	for r := 0; r < p; r++ {
		go func(rank int) {
			defer wg.Done()
			results[rank] = pgasrt.Broadcast(w, rank, rank*10)
		}(r)
	}
	wg.Wait()

	want := []int{0, 10, 20, 30}
	for r := 0; r < p; r++ {
		assert.Equal(t, want, results[r], "rank %d", r)
	}
}

func TestAllReduceSumMatchesOnEveryRank(t *testing.T) {
	const p = 3
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	results := make([]float64, p)
	var wg sync.WaitGroup
	wg.Add(p)
	for r := 0; r < p; r++ {
		go func(rank int) {
			defer wg.Done()
			results[rank] = pgasrt.AllReduceSum(w, rank, float64(rank+1))
		}(r)
	}
	wg.Wait()

	for r := 0; r < p; r++ {
		assert.InDelta(t, 6.0, results[r], 1e-12)
	}
}

func TestCollectiveReturnsFirstErrorButRunsEveryRank(t *testing.T) {
	const p = 5
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	ran := make([]bool, p)
	var mu sync.Mutex
	err = w.Collective(func(rank int) error {
		mu.Lock()
		ran[rank] = true
		mu.Unlock()
		w.Barrier(rank)
		if rank == 2 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
	for r := 0; r < p; r++ {
		assert.True(t, ran[r], "rank %d never ran", r)
	}
}

func TestWorldSupportsRepeatedRounds(t *testing.T) {
	const p = 4
	w, err := pgasrt.NewWorld(p)
	require.NoError(t, err)

	for round := 0; round < 20; round++ {
		var wg sync.WaitGroup
		wg.Add(p)
		for r := 0; r < p; r++ {
			go func(rank int) {
				defer wg.Done()
				w.Barrier(rank)
			}(r)
		}
		wg.Wait()
	}
}
