package vec

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "github.com/pkg/errors"

// Error kinds for Vec, per spec.md §7.
var (
	// ErrInvalidSize is returned when Allocate is called with N <= 0.
	ErrInvalidSize = errors.New("vec: global size must be positive")
	// ErrAlreadyAllocated is returned on a second call to Allocate.
	ErrAlreadyAllocated = errors.New("vec: already allocated")
	// ErrNotAllocated names the state of a Vec used before Allocate has
	// run. Vec's methods do not check for that state and do not return it.
	ErrNotAllocated = errors.New("vec: not allocated")
	// ErrIndexOutOfRange is returned when a global index lies outside [0, N).
	ErrIndexOutOfRange = errors.New("vec: index out of range")
	// ErrSizeMismatch is returned when two vectors' sizes disagree where
	// they must match (Copy, Dot).
	ErrSizeMismatch = errors.New("vec: size mismatch")
	// ErrInvalidRange is returned by ReadRange for a malformed [start, end).
	ErrInvalidRange = errors.New("vec: invalid range")
)
