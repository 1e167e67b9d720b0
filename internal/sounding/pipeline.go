package sounding

import (
	"context"
	"log/slog"
	"math"
	"time"

	"cptcli/internal/config"
)

// CleanMode selects how sentinel-flagged rows are handled by the pipeline.
type CleanMode string

const (
	// CleanRemove drops flagged rows entirely.
	CleanRemove CleanMode = "remove"
	// CleanReplace keeps flagged rows but blanks all non-depth columns
	// with the replacement value.
	CleanReplace CleanMode = "replace"
	// CleanKeep skips the cleaning stage.
	CleanKeep CleanMode = "keep"
)

// RunOptions configures a pipeline run.
type RunOptions struct {
	Clean CleanMode
	// Replacement is the scalar written into flagged rows under
	// CleanReplace. Zero value means NaN.
	Replacement float64
	// ReplacementSet marks Replacement as explicitly provided, so a zero
	// replacement value can be distinguished from the NaN default.
	ReplacementSet bool

	// RegularizeDepth enables the optional depth adjustment stage.
	RegularizeDepth bool
	Depth           DepthOptions
}

// Pipeline chains the cleaning, depth, stress and solver stages over a
// loaded table. Each stage consumes the complete output of the previous one
// and produces a new table; a failed stage aborts the run and the partial
// table is discarded.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline around a validated configuration.
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes the pipeline over the loaded records and returns the fully
// derived table.
func (p *Pipeline) Run(ctx context.Context, records []Record, opts RunOptions) ([]Result, error) {
	start := time.Now()

	p.logger.InfoContext(ctx, "starting sounding pipeline",
		"rows", len(records),
		"clean", string(opts.Clean),
		"regularize_depth", opts.RegularizeDepth,
	)

	switch opts.Clean {
	case CleanRemove:
		before := len(records)
		records = RemoveRows(records, p.cfg.Sentinels)
		p.logger.InfoContext(ctx, "removed sentinel-flagged rows",
			"removed", before-len(records),
			"remaining", len(records),
		)
	case CleanReplace:
		replacement := math.NaN()
		if opts.ReplacementSet {
			replacement = opts.Replacement
		}
		records = ReplaceRows(records, p.cfg.Sentinels, replacement)
	case CleanKeep, "":
		// raw data passes through
	}

	if opts.RegularizeDepth {
		adjusted, err := AdjustDepth(records, opts.Depth)
		if err != nil {
			return nil, err
		}
		records = adjusted
	}

	stress := NewStressComputer(p.cfg.AreaRatio, p.cfg.GammaSoil, p.cfg.RollingWindow, p.logger)
	derived, err := stress.Compute(ctx, records)
	if err != nil {
		return nil, err
	}

	solver := NewBehaviorSolver(SolverParams{
		PRef:             p.cfg.PRef,
		MaxIter:          p.cfg.MaxIter,
		Tolerance:        p.cfg.Tolerance,
		SecondaryIndices: p.cfg.SecondaryIndices,
		MaxConcurrency:   p.cfg.MaxConcurrency,
	}, p.logger)

	results, err := solver.Solve(ctx, derived)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "sounding pipeline completed",
		"rows", len(results),
		"duration", time.Since(start),
	)

	return results, nil
}
