package sounding

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "cptcli/internal/errors"
)

// ColumnNames maps the fixed record schema to the header names used in an
// input file. Depth, Qc, Fs and U2 are required; U0 is optional and
// synthesized hydrostatically when absent.
type ColumnNames struct {
	Depth string
	Qc    string
	Fs    string
	U2    string
	U0    string
}

// LoadOptions configures loading of a sounding table.
type LoadOptions struct {
	Columns ColumnNames
	// GammaWater and WaterLevel feed the hydrostatic fallback
	// u0 = gamma_w * (depth - water_level) used when the U0 column is
	// missing from the input. Below the water table only; shallower rows
	// get u0 = 0.
	GammaWater float64
	WaterLevel float64
}

// LoadFile reads a sounding table from disk, dispatching on the file
// extension: .xlsx is read through the Excel loader, anything else is
// treated as CSV.
func LoadFile(path string, opts LoadOptions) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadExcel(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sounding file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// Parse reads a header-bearing CSV table from r and returns the raw
// records. A SchemaError naming every missing required column is returned
// if the header is incomplete; a ParseError is returned for the first cell
// that is not a valid float64.
func Parse(r io.Reader, opts LoadOptions) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return parseRows(header, rows, opts)
}

// parseRows converts a header and raw string rows into records. It is
// shared by the CSV and Excel loaders.
func parseRows(header []string, rows [][]string, opts LoadOptions) ([]Record, error) {
	cols := opts.Columns

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	required := []string{cols.Depth, cols.Qc, cols.Fs, cols.U2}
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(missing...)
	}

	u0Idx, hasU0 := index[cols.U0]

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after the header row

		depth, err := parseCell(row, index[cols.Depth], cols.Depth, line)
		if err != nil {
			return nil, err
		}
		qc, err := parseCell(row, index[cols.Qc], cols.Qc, line)
		if err != nil {
			return nil, err
		}
		fs, err := parseCell(row, index[cols.Fs], cols.Fs, line)
		if err != nil {
			return nil, err
		}
		u2, err := parseCell(row, index[cols.U2], cols.U2, line)
		if err != nil {
			return nil, err
		}

		var u0 float64
		if hasU0 {
			u0, err = parseCell(row, u0Idx, cols.U0, line)
			if err != nil {
				return nil, err
			}
		} else {
			u0 = hydrostaticU0(depth, opts.GammaWater, opts.WaterLevel)
		}

		records = append(records, Record{
			Depth: depth,
			Qc:    qc,
			Fs:    fs,
			U2:    u2,
			U0:    u0,
		})
	}

	return records, nil
}

// parseCell parses one cell as float64, reporting location context on
// failure. Excel rows can be ragged, so an out-of-range index is treated as
// an empty cell.
func parseCell(row []string, idx int, column string, line int) (float64, error) {
	var raw string
	if idx < len(row) {
		raw = strings.TrimSpace(row[idx])
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewParseError(line, column, raw, err)
	}
	return value, nil
}

// hydrostaticU0 synthesizes the baseline pore pressure for a row whose
// input lacks the u0 column.
func hydrostaticU0(depth, gammaWater, waterLevel float64) float64 {
	if depth >= waterLevel {
		return gammaWater * (depth - waterLevel)
	}
	return 0
}
