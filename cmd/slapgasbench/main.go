// Command slapgasbench is the benchmark driver described in spec.md §6:
// it synthesizes a sparse test matrix at a chosen dimension and sparsity,
// runs one or more SpMV strategies against it for a chosen number of
// iterations, and reports the elapsed time. It is an ambient demonstration
// harness over the library packages (internal/bench, internal/mat,
// internal/vec, internal/spmv, internal/pgasrt), not part of the library's
// contract (SPEC_FULL.md §6).
package main

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const appName = "slapgasbench"

var gVersion = "9.9.9" // overwritten at build time via -ldflags -X

var examples = []string{
	fmt.Sprintf("  Run every strategy on a 10000x10000 problem:  $ %s -d 10000 --sparsity 50", appName),
	fmt.Sprintf("  Run only the block strategy, quietly:         $ %s -d 10000 --sparsity 50 --strategy block -q", appName),
	fmt.Sprintf("  Run from a config file:                       $ %s --config bench.yaml", appName),
	fmt.Sprintf("  Serve prometheus metrics while running:       $ %s -d 10000 --sparsity 50 --metrics-addr :9090", appName),
}

var (
	flagDimension   int
	flagSparsity    int
	flagIterations  int
	flagQuiet       bool
	flagStrategy    string
	flagRanks       int
	flagConfigFile  string
	flagReportFile  string
	flagMetricsAddr string
	flagDebug       bool
)

const (
	flagDimensionName   = "dimension"
	flagSparsityName    = "sparsity"
	flagIterationsName  = "iterations"
	flagQuietName       = "quiet"
	flagStrategyName    = "strategy"
	flagRanksName       = "ranks"
	flagConfigName      = "config"
	flagReportName      = "report"
	flagMetricsAddrName = "metrics-addr"
	flagDebugName       = "debug"
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Benchmark driver for the distributed sparse matrix-vector multiply library",
	Example:       strings.Join(examples, "\n"),
	Version:       gVersion,
	RunE:          runCmd,
	PreRunE:       validateFlags,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// pflag shorthands are restricted to a single rune, so the source
	// driver's -sp/-it are registered here as long flags only; -d and -q
	// keep their original single-letter form.
	rootCmd.Flags().IntVarP(&flagDimension, flagDimensionName, "d", 1000, "matrix side length")
	rootCmd.Flags().IntVar(&flagSparsity, flagSparsityName, 10, "one nonzero per this many columns")
	rootCmd.Flags().IntVar(&flagIterations, flagIterationsName, 10, "number of SpMV repetitions")
	rootCmd.Flags().BoolVarP(&flagQuiet, flagQuietName, "q", false, "print only the elapsed seconds")
	rootCmd.Flags().StringVar(&flagStrategy, flagStrategyName, "all", "strategy to run: naive, single, block, rc, or all")
	rootCmd.Flags().IntVar(&flagRanks, flagRanksName, runtime.GOMAXPROCS(0), "number of simulated PGAS ranks")
	rootCmd.Flags().StringVar(&flagConfigFile, flagConfigName, "", "YAML config file, overrides the flags above when set")
	rootCmd.Flags().StringVar(&flagReportFile, flagReportName, "", "optional .xlsx summary output path")
	rootCmd.Flags().StringVar(&flagMetricsAddr, flagMetricsAddrName, "", "optional address to serve /metrics on, e.g. :9090")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, flagDebugName, false, "enable debug logging")
}

func validateFlags(cmd *cobra.Command, args []string) error {
	logOpts := slog.HandlerOptions{Level: slog.LevelInfo}
	if flagDebug {
		logOpts.Level = slog.LevelDebug
		logOpts.AddSource = true
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &logOpts)))
	if flagRanks <= 0 {
		return fmt.Errorf("--%s must be positive", flagRanksName)
	}
	return nil
}

func main() {
	cobra.EnableCommandSorting = false
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
