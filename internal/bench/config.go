package bench

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"slaps-go/internal/spmv"
)

// Config is the benchmark driver's YAML configuration file, an
// alternative to passing -d/--sparsity/--iterations/-q on the command line (spec.md §6,
// SPEC_FULL.md §1a), matching the teacher's convention of a struct
// mirrored 1:1 onto yaml tags.
type Config struct {
	Dimension  int    `yaml:"dimension"`
	Sparsity   int    `yaml:"sparsity"`
	Iterations int    `yaml:"iterations"`
	Quiet      bool   `yaml:"quiet"`
	Strategy   string `yaml:"strategy"`
	Report     string `yaml:"report"`
}

// DefaultConfig returns the driver's defaults when neither a config file
// nor flags override them.
func DefaultConfig() Config {
	return Config{
		Dimension:  1000,
		Sparsity:   10,
		Iterations: 10,
		Strategy:   "all",
	}
}

// LoadConfig reads and parses a benchmark config file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Validate checks that the configuration names a runnable benchmark.
func (c Config) Validate() error {
	if c.Dimension <= 0 {
		return ErrInvalidDimension
	}
	if c.Sparsity <= 0 {
		return ErrInvalidSparsity
	}
	if c.Iterations <= 0 {
		return ErrInvalidIterations
	}
	if c.Strategy != "all" {
		if _, ok := spmv.ParseStrategy(c.Strategy); !ok {
			return ErrInvalidStrategy
		}
	}
	return nil
}
