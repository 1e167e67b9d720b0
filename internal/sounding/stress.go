package sounding

import (
	"context"
	"log/slog"
)

// StressComputer derives total/effective stress, corrected resistance and
// the normalized friction and pore-pressure ratios for every row. Each row
// depends only on its own cleaned inputs, except the smoothing window,
// which reads a bounded neighborhood of the fs and qt columns.
type StressComputer struct {
	AreaRatio float64 // cone net-area correction factor a
	GammaSoil float64 // soil unit weight, kN/m3
	Window    int     // centered smoothing window length, one of {1, 3, 5}

	logger *slog.Logger
}

// NewStressComputer creates a stress computer with the given constants.
func NewStressComputer(areaRatio, gammaSoil float64, window int, logger *slog.Logger) *StressComputer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StressComputer{
		AreaRatio: areaRatio,
		GammaSoil: gammaSoil,
		Window:    window,
		logger:    logger,
	}
}

// Compute produces a new derived table from the cleaned records. Zero or
// negative denominators propagate as ±Inf or NaN under ordinary
// floating-point semantics; nothing is clamped or substituted.
func (s *StressComputer) Compute(ctx context.Context, records []Record) ([]Result, error) {
	s.logger.InfoContext(ctx, "computing stress parameters",
		"rows", len(records),
		"area_ratio", s.AreaRatio,
		"gamma_soil", s.GammaSoil,
		"rolling_window", s.Window,
	)

	results := make([]Result, len(records))
	fs := make([]float64, len(records))
	qt := make([]float64, len(records))

	for i, r := range records {
		res := Result{Record: r}
		res.SigmaVTot = s.GammaSoil * r.Depth
		res.SigmaVEff = res.SigmaVTot - r.U0
		// qc in MPa, u2 in kPa: the pore-pressure correction is scaled
		// back to MPa
		res.Qt = r.Qc + (1-s.AreaRatio)*r.U2/1000

		results[i] = res
		fs[i] = r.Fs
		qt[i] = res.Qt
	}

	fsSmoothed, err := RollingCentered(fs, s.Window, Mean)
	if err != nil {
		return nil, err
	}
	qtSmoothed, err := RollingCentered(qt, s.Window, Mean)
	if err != nil {
		return nil, err
	}

	for i := range results {
		res := &results[i]
		res.FsSmoothed = fsSmoothed[i]
		res.QtSmoothed = qtSmoothed[i]

		// net resistance in kPa; shared by both ratios
		netResistance := res.QtSmoothed*1000 - res.SigmaVTot
		res.Fr = res.FsSmoothed / netResistance * 100
		res.Bq = (res.U2 - res.U0) / netResistance
	}

	return results, nil
}
