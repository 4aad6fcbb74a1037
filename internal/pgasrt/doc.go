// Package pgasrt implements a single-process simulation of a Partitioned
// Global Address Space (PGAS) runtime: a fixed set of ranks that share one
// Go process but address each other's memory only through one-sided,
// futures-based get/put operations plus explicit collectives (barrier,
// broadcast, allreduce).
//
// Real PGAS runtimes (UPC++, OpenSHMEM) launch one OS process per rank and
// service remote memory access through a progress engine driven by
// low-level network primitives. This port keeps the same programming
// model — non-blocking get/put, explicit wait, explicit collectives — but
// runs every rank as a goroutine inside one process, with remote memory
// implemented as ordinary Go slices guarded by per-rank locks. See
// DESIGN.md for the Open Question this resolves.
package pgasrt

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause
