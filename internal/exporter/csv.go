// Package exporter persists a fully derived sounding table as CSV. The
// pipeline itself only hands the table to the caller; writing it out is a
// presentation concern kept separate from the compute stages.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"cptcli/internal/sounding"
)

// Header is the fixed output column order of the derived schema.
var Header = []string{
	"depth",
	"qc",
	"fs",
	"u2",
	"u0",
	"sigma_v_tot",
	"sigma_v_eff",
	"qt",
	"fs_smoothed",
	"qt_smoothed",
	"Fr",
	"Bq",
	"n_exponent",
	"Qtn",
	"Ic",
	"Cd",
	"Ib",
	"convergence_flag",
}

// WriteCSV writes the derived table to path, creating parent directories as
// needed.
func WriteCSV(path string, results []sounding.Result) error {
	slog.Info("writing sounding results",
		slog.String("path", path),
		slog.Int("rows", len(results)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	return Write(file, results)
}

// Write streams the derived table to w with the fixed Header. NaN cells are
// serialized as "NaN" and infinities as "+Inf"/"-Inf"; the convergence flag
// of skipped rows is left empty.
func Write(w io.Writer, results []sounding.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, res := range results {
		record := []string{
			formatFloat(res.Depth),
			formatFloat(res.Qc),
			formatFloat(res.Fs),
			formatFloat(res.U2),
			formatFloat(res.U0),
			formatFloat(res.SigmaVTot),
			formatFloat(res.SigmaVEff),
			formatFloat(res.Qt),
			formatFloat(res.FsSmoothed),
			formatFloat(res.QtSmoothed),
			formatFloat(res.Fr),
			formatFloat(res.Bq),
			formatFloat(res.NExponent),
			formatFloat(res.Qtn),
			formatFloat(res.Ic),
			formatFloat(res.Cd),
			formatFloat(res.Ib),
			formatConvergence(res.Convergence),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// formatFloat renders a value at full round-trip precision.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// formatConvergence serializes the tri-state flag; skipped rows stay empty.
func formatConvergence(state sounding.ConvergenceState) string {
	if state == sounding.NotApplicable {
		return ""
	}
	return state.String()
}
