package main

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"github.com/xuri/excelize/v2"
)

const reportSheetName = "Benchmark Summary"

var reportColumns = []string{"Strategy", "Dimension", "Sparsity", "Iterations", "Seconds"}

// writeReport writes one row per strategyResult to an .xlsx summary
// sheet, mirroring the teacher's benchmark command's
// summaryXlsxTableRenderer (cmd/benchmark/benchmark.go) but scoped to the
// handful of numeric columns this driver produces.
func writeReport(path string, results []strategyResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for col, name := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheetName, cell, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(reportSheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, r := range results {
		row := i + 2
		values := []any{r.Strategy, r.Dimension, r.Sparsity, r.Iterations, r.Elapsed.Seconds()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reportSheetName, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
