package main

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"slaps-go/internal/bench"
	"slaps-go/internal/metrics"
	"slaps-go/internal/pgasrt"
	"slaps-go/internal/progress"
	"slaps-go/internal/spmv"
)

// strategyResult is one row of the benchmark summary: the fields
// cmd/slapgasbench prints per strategy and, optionally, writes to an
// .xlsx report (SPEC_FULL.md §2a).
type strategyResult struct {
	Strategy   string
	Dimension  int
	Sparsity   int
	Iterations int
	Elapsed    time.Duration
}

func resolveConfig() (bench.Config, error) {
	if flagConfigFile != "" {
		cfg, err := bench.LoadConfig(flagConfigFile)
		if err != nil {
			return bench.Config{}, err
		}
		return cfg, cfg.Validate()
	}
	cfg := bench.Config{
		Dimension:  flagDimension,
		Sparsity:   flagSparsity,
		Iterations: flagIterations,
		Quiet:      flagQuiet,
		Strategy:   flagStrategy,
		Report:     flagReportFile,
	}
	return cfg, cfg.Validate()
}

func strategiesToRun(name string) []spmv.Strategy {
	if name == "all" {
		return spmv.AllStrategies
	}
	strat, _ := spmv.ParseStrategy(name)
	return []spmv.Strategy{strat}
}

func runCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if flagMetricsAddr != "" {
		metrics.ServeHTTP(flagMetricsAddr)
	}

	printer := message.NewPrinter(language.English)
	if !cfg.Quiet {
		printer.Printf("Dimension:  %d\n", cfg.Dimension)
		printer.Printf("Sparsity:   %d\n", cfg.Sparsity)
		printer.Printf("Iterations: %d\n", cfg.Iterations)
		printer.Printf("Ranks:      %d\n", flagRanks)
	}

	strategies := strategiesToRun(cfg.Strategy)
	var spinner *progress.MultiSpinner
	if !cfg.Quiet {
		spinner = progress.NewMultiSpinner()
		for _, strat := range strategies {
			_ = spinner.AddSpinner(strat.String())
		}
		spinner.Start()
	}

	results := make([]strategyResult, 0, len(strategies))
	for _, strat := range strategies {
		if spinner != nil {
			_ = spinner.Status(strat.String(), "running")
		}
		elapsed, err := runStrategy(cfg, strat)
		if err != nil {
			if spinner != nil {
				spinner.Finish()
			}
			return fmt.Errorf("strategy %s: %w", strat, err)
		}
		if spinner != nil {
			_ = spinner.Status(strat.String(), fmt.Sprintf("done in %fs", elapsed.Seconds()))
		}
		results = append(results, strategyResult{
			Strategy:   strat.String(),
			Dimension:  cfg.Dimension,
			Sparsity:   cfg.Sparsity,
			Iterations: cfg.Iterations,
			Elapsed:    elapsed,
		})
	}
	if spinner != nil {
		spinner.Finish()
	}
	if cfg.Quiet {
		for _, r := range results {
			fmt.Printf("%f\n", r.Elapsed.Seconds())
		}
	} else {
		for _, r := range results {
			printer.Printf("%s Time: %f\n", r.Strategy, r.Elapsed.Seconds())
		}
	}

	if cfg.Report != "" {
		if err := writeReport(cfg.Report, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if !cfg.Quiet {
			printer.Printf("Report written to %s\n", cfg.Report)
		}
	}
	return nil
}

// runStrategy builds the synthetic matrix/vector across flagRanks
// simulated ranks and times strat's SpMV applied cfg.Iterations times.
// Every rank participates (vector allocation is collective and each rank
// owns one band of rows); only rank 0's elapsed time is reported, bracketed by
// barriers so every rank starts and finishes each timed region together.
func runStrategy(cfg bench.Config, strat spmv.Strategy) (time.Duration, error) {
	w, err := pgasrt.NewWorld(flagRanks)
	if err != nil {
		return 0, err
	}

	var elapsed time.Duration
	driveErr := w.Collective(func(rank int) error {
		x, err := bench.OnesVector[float64](w, rank, cfg.Dimension)
		if err != nil {
			return err
		}
		y, err := bench.OnesVector[float64](w, rank, cfg.Dimension)
		if err != nil {
			return err
		}

		var apply func() error
		if strat == spmv.StrategyRC {
			m, err := bench.SynthesizeRC[float64](w, rank, cfg.Dimension, cfg.Sparsity)
			if err != nil {
				return err
			}
			apply = func() error { return spmv.MulRC(m, x, y) }
		} else {
			m, err := bench.Synthesize[float64](w, rank, cfg.Dimension, cfg.Sparsity)
			if err != nil {
				return err
			}
			apply = func() error { return spmv.Mul(strat, m, x, y) }
		}

		w.Barrier(rank)
		start := time.Now()
		for i := 0; i < cfg.Iterations; i++ {
			if err := apply(); err != nil {
				return err
			}
		}
		w.Barrier(rank)
		if rank == 0 {
			elapsed = time.Since(start)
		}
		return nil
	})
	if driveErr != nil {
		return 0, driveErr
	}
	return elapsed, nil
}
