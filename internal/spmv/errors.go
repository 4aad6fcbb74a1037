package spmv

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "slaps-go/internal/mat"

// ErrNotSetUp is returned by the Single, Block, and RC strategies when the
// matrix has not completed Setup. Naive tolerates an un-set-up matrix (it
// simply sees empty adjacency lists) — preserving the divergence noted in
// spec.md §9 rather than unifying the two checks. Mul also returns it,
// without running anything, for StrategyRC or any strategy value it does
// not dispatch.
var ErrNotSetUp = mat.ErrNotSetUp
