package rdata_test

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slaps-go/internal/pgasrt"
	"slaps-go/internal/rdata"
)

func newSegment(t *testing.T) *pgasrt.Segment[float64] {
	t.Helper()
	w, err := pgasrt.NewWorld(2)
	require.NoError(t, err)
	return pgasrt.NewSegment(w, [][]float64{{1, 2, 3}, {10, 20, 30}})
}

func TestGetReturnsCurrentValueWithoutPriorPrefetch(t *testing.T) {
	seg := newSegment(t)
	r := rdata.New(seg, 1, 2, 102, nil)
	assert.Equal(t, 30.0, r.Get())
}

func TestPrefetchThenGetReturnsSameValue(t *testing.T) {
	seg := newSegment(t)
	r := rdata.New(seg, 0, 1, 1, nil)
	r.Prefetch()
	assert.Equal(t, 2.0, r.Get())
}

func TestUpdateRebindsAndClearsFetched(t *testing.T) {
	seg := newSegment(t)
	r := rdata.New(seg, 0, 0, 0, nil)
	r.Prefetch()
	r.Update(1, 0, 100)
	assert.Equal(t, 100, r.Address())
	assert.Equal(t, 10.0, r.Get()) // must re-fetch from the new binding, not return the stale prefetch
}

func TestAssignWithoutTrackerIsReadOnly(t *testing.T) {
	seg := newSegment(t)
	r := rdata.New(seg, 0, 0, 0, nil)
	err := r.Assign(5)
	assert.ErrorIs(t, err, rdata.ErrReadOnly)
}

func TestAssignRoutesThroughProvidedTracker(t *testing.T) {
	seg := newSegment(t)
	var tr pgasrt.Tracker
	r := rdata.New(seg, 0, 0, 0, &tr)
	require.NoError(t, r.Assign(99))
	tr.Wait()
	assert.Equal(t, 99.0, seg.Local(0)[0])
}
