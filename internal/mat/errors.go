package mat

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "github.com/pkg/errors"

// Error kinds for Mat/RCMat, per spec.md §7.
var (
	// ErrInvalidDimensions is returned by SetDimensions for M<=0 or N<=0.
	ErrInvalidDimensions = errors.New("mat: dimensions must be positive")
	// ErrDimensionsAlreadySet is returned on a second SetDimensions call.
	ErrDimensionsAlreadySet = errors.New("mat: dimensions already set")
	// ErrDimensionsNotSet is returned by SetValue/Setup before SetDimensions.
	ErrDimensionsNotSet = errors.New("mat: dimensions not set")
	// ErrAlreadySetUp is returned on a second call to Setup.
	ErrAlreadySetUp = errors.New("mat: already set up")
	// ErrRowOutOfRange is returned when SetValue's row lies outside the
	// caller's local row band (checked in every build).
	ErrRowOutOfRange = errors.New("mat: row outside local band")
	// ErrColOutOfRange is returned when SetValue's column lies outside
	// [0, N) (checked in every build).
	ErrColOutOfRange = errors.New("mat: column out of range")
	// ErrDimensionMismatch is returned by CheckDimensions when x or y's
	// size is incompatible with the matrix shape.
	ErrDimensionMismatch = errors.New("mat: operand size mismatch")
	// ErrNotSetUp is returned by SpMV strategies that require Setup to
	// have run (the naive strategy tolerates its absence, see spec.md §9).
	ErrNotSetUp = errors.New("mat: not set up")
)
