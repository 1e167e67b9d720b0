package sounding

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
)

// SolverParams holds the constants of the behavior solver. They are
// validated once at startup and shared read-only by all workers.
type SolverParams struct {
	PRef      float64 // reference pressure, kPa
	MaxIter   int     // iteration cap; the loop runs at most MaxIter-1 steps
	Tolerance float64 // convergence threshold on the stress exponent

	// SecondaryIndices enables the Cd and Ib classification columns,
	// computed from the final Qtn and Fr.
	SecondaryIndices bool

	// MaxConcurrency bounds the number of row workers. Values below 1 are
	// treated as 1.
	MaxConcurrency int
}

// BehaviorSolver derives the stress exponent, normalized resistance and
// soil behavior index per row through a bounded fixed-point iteration.
// Rows are independent, so they are fanned out across workers; results are
// written by row index, so output order always equals input order.
type BehaviorSolver struct {
	params SolverParams
	logger *slog.Logger
}

// NewBehaviorSolver creates a solver with the given parameters.
func NewBehaviorSolver(params SolverParams, logger *slog.Logger) *BehaviorSolver {
	if logger == nil {
		logger = slog.Default()
	}
	if params.MaxConcurrency < 1 {
		params.MaxConcurrency = 1
	}
	return &BehaviorSolver{params: params, logger: logger}
}

// Solve produces a new table with the solver columns filled in. Rows with a
// negative or NaN friction ratio cannot be classified: they get NaN outputs
// and the NotApplicable state without iterating. Non-convergence is a
// recorded per-row outcome, never an error.
func (s *BehaviorSolver) Solve(ctx context.Context, rows []Result) ([]Result, error) {
	s.logger.InfoContext(ctx, "solving soil behavior index",
		"rows", len(rows),
		"p_ref", s.params.PRef,
		"max_iter", s.params.MaxIter,
		"tolerance", s.params.Tolerance,
		"workers", s.params.MaxConcurrency,
	)

	out := make([]Result, len(rows))
	copy(out, rows)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.params.MaxConcurrency)

	chunk := (len(out) + s.params.MaxConcurrency - 1) / s.params.MaxConcurrency
	for lo := 0; lo < len(out); lo += chunk {
		hi := min(lo+chunk, len(out))
		batch := out[lo:hi]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := range batch {
				s.solveRow(&batch[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	converged := 0
	for i := range out {
		if out[i].Convergence == Converged {
			converged++
		}
	}
	s.logger.InfoContext(ctx, "behavior solver finished",
		"rows", len(out),
		"converged", converged,
	)

	return out, nil
}

// solveRow runs the fixed-point iteration for one row in place.
func (s *BehaviorSolver) solveRow(row *Result) {
	qt := row.Qt * 1000 // MPa to kPa, same unit as the stress columns
	fr := row.Fr

	if fr < 0 || math.IsNaN(fr) {
		row.NExponent = math.NaN()
		row.Qtn = math.NaN()
		row.Ic = math.NaN()
		row.Cd = math.NaN()
		row.Ib = math.NaN()
		row.Convergence = NotApplicable
		return
	}

	converged := false
	n := 1.0

	// The convergence test inspects the candidate next value, so the loop
	// budget is max_iter - 1 steps.
	for iter := 0; iter < s.params.MaxIter-1; iter++ {
		qtn := normalizedResistance(n, qt, row.SigmaVEff, row.SigmaVTot, s.params.PRef)
		ic := behaviorIndex(qtn, fr)
		next := stressExponent(ic, row.SigmaVEff, s.params.PRef)

		converged = math.Abs(next-n) <= s.params.Tolerance
		n = next

		if converged {
			break
		}
	}

	row.NExponent = n
	row.Qtn = normalizedResistance(n, qt, row.SigmaVEff, row.SigmaVTot, s.params.PRef)
	row.Ic = behaviorIndex(row.Qtn, fr)

	if converged {
		row.Convergence = Converged
	} else {
		row.Convergence = NotConverged
	}

	if s.params.SecondaryIndices {
		row.Cd = (row.Qtn - 11) * math.Pow(1+0.06*fr, 17)
		row.Ib = 100 * (row.Qtn + 10) / (70 + row.Qtn*fr)
	} else {
		row.Cd = math.NaN()
		row.Ib = math.NaN()
	}
}

// stressExponent is the update rule for n, capped at 1.
func stressExponent(ic, sigmaVEff, pRef float64) float64 {
	return math.Min(1.0, 0.381*ic+0.05*(sigmaVEff/pRef)-0.15)
}

// normalizedResistance computes Qtn for a given stress exponent. qt is in
// kPa here.
func normalizedResistance(n, qt, sigmaVEff, sigmaVTot, pRef float64) float64 {
	cn := math.Pow(pRef/sigmaVEff, n)
	return (qt - sigmaVTot) / pRef * cn
}

// behaviorIndex computes Ic from Qtn and Fr. Non-positive arguments to
// log10 propagate as NaN.
func behaviorIndex(qtn, fr float64) float64 {
	qtnTerm := 3.47 - math.Log10(qtn)
	frTerm := math.Log10(fr) + 1.22
	return math.Sqrt(qtnTerm*qtnTerm + frTerm*frTerm)
}
