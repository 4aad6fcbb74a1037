package pgasrt_test

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slaps-go/internal/pgasrt"
)

func newTestSegment(t *testing.T, ranks int, slabLen int) *pgasrt.Segment[float64] {
	t.Helper()
	w, err := pgasrt.NewWorld(ranks)
	require.NoError(t, err)
	slabs := make([][]float64, ranks)
	for r := range slabs {
		slabs[r] = make([]float64, slabLen)
		for i := range slabs[r] {
			slabs[r][i] = float64(r*100 + i)
		}
	}
	return pgasrt.NewSegment(w, slabs)
}

func TestSegmentGetReadsOwningRankSlab(t *testing.T) {
	seg := newTestSegment(t, 3, 4)
	assert.Equal(t, 203.0, seg.Get(2, 3).Wait())
}

func TestSegmentGetRangeReturnsContiguousSlice(t *testing.T) {
	seg := newTestSegment(t, 2, 5)
	got := seg.GetRange(1, 1, 4).Wait()
	assert.Equal(t, []float64{101, 102, 103}, got)
}

func TestSegmentPrefetchBehavesLikeGet(t *testing.T) {
	seg := newTestSegment(t, 2, 5)
	assert.Equal(t, 104.0, seg.Prefetch(1, 4).Wait())
}

func TestSegmentPutIsVisibleOnOwningRankSlab(t *testing.T) {
	seg := newTestSegment(t, 2, 5)
	seg.Put(0, 2, 99).Wait()
	assert.Equal(t, 99.0, seg.Local(0)[2])
}
