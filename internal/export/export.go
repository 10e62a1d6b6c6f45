// Package export writes grid summaries and generated records to CSV,
// JSON, and XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/quantumsheets/quantum-sheets/internal/datagen"
	"github.com/quantumsheets/quantum-sheets/internal/engine"
)

// GridCSV writes a per-column summary of the grid: one row per populated
// column with its sum and count
func GridCSV(w io.Writer, g *engine.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Column", "Sum", "Count"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, col := range g.ColumnIndexes() {
		row := []string{
			engine.ColumnName(col),
			strconv.FormatFloat(g.ColumnSum(col), 'f', 2, 64),
			strconv.Itoa(g.ColumnCount(col)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RecordsCSV writes generated records as CSV with an ID,Phone,City,Gender
// header
func RecordsCSV(w io.Writer, records []datagen.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Phone", "City", "Gender"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{strconv.Itoa(r.ID), r.Phone, r.City, r.Gender}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RecordsJSON writes generated records as indented JSON
func RecordsJSON(w io.Writer, records []datagen.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// GridXLSX writes the grid to a single-sheet workbook. Stored values land
// in their cells; stored formulas are written as cell formulas so the
// workbook recalculates them on open.
func GridXLSX(w io.Writer, g *engine.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for _, col := range g.ColumnIndexes() {
		column := g.Column(col)
		for _, row := range column.Rows() {
			value, _ := column.Get(row)
			cell := engine.EncodeAddress(row, col)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	for _, addr := range g.FormulaAddresses() {
		formula := g.FormulaAt(addr)
		// excelize expects formula text without the leading '='
		text := formula.Text()[1:]
		if err := f.SetCellFormula(sheet, addr.String(), text); err != nil {
			return fmt.Errorf("set formula %s: %w", addr, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
