package bench

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "github.com/pkg/errors"

// ErrInvalidDimension is returned when Synthesize or Config.Validate is
// given a non-positive matrix dimension.
var ErrInvalidDimension = errors.New("bench: dimension must be positive")

// ErrInvalidSparsity is returned when the sparsity parameter is
// non-positive (spec.md §6: "one nonzero per sparsity columns").
var ErrInvalidSparsity = errors.New("bench: sparsity must be positive")

// ErrInvalidIterations is returned when the iteration count is non-positive.
var ErrInvalidIterations = errors.New("bench: iterations must be positive")

// ErrInvalidStrategy is returned when a config file or flag names a
// strategy spmv.ParseStrategy does not recognize and that is not "all".
var ErrInvalidStrategy = errors.New("bench: unrecognized strategy name")
