package pgasrt

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "github.com/pkg/errors"

// ErrInvalidWorldSize is returned when a World is constructed with a
// non-positive rank count (spec.md §4.1: "P ≤ 0 is a precondition
// violation").
var ErrInvalidWorldSize = errors.New("pgasrt: world size must be positive")
