package sounding

// Record is a single raw CPTu measurement row after loading. All values are
// float64; sentinel codes such as -9999 may appear in any field until the
// cleaner has run.
type Record struct {
	Depth float64 // penetration depth, m
	Qc    float64 // measured cone tip resistance, MPa
	Fs    float64 // measured sleeve friction, kPa
	U2    float64 // pore pressure at the cone shoulder, kPa
	U0    float64 // baseline (hydrostatic) pore pressure, kPa
}

// values returns the row in column order. Cleaning operations match
// horizontally across all of these.
func (r Record) values() [5]float64 {
	return [5]float64{r.Depth, r.Qc, r.Fs, r.U2, r.U0}
}

// Result is a fully derived row. The embedded Record keeps the cleaned
// input values; the remaining fields are filled in by the stress computer
// and the behavior solver.
type Result struct {
	Record

	SigmaVTot  float64 // total vertical stress, kPa
	SigmaVEff  float64 // effective vertical stress, kPa
	Qt         float64 // corrected cone resistance, MPa
	FsSmoothed float64 // centered moving average of fs, kPa
	QtSmoothed float64 // centered moving average of qt, MPa
	Fr         float64 // normalized friction ratio, %
	Bq         float64 // normalized pore-pressure ratio

	NExponent float64 // stress exponent n
	Qtn       float64 // stress-normalized cone resistance
	Ic        float64 // soil behavior type index
	Cd        float64 // contractive-dilative boundary parameter
	Ib        float64 // modified soil behavior index

	Convergence ConvergenceState
}

// ConvergenceState records the outcome of the behavior solver for one row.
// Skipped rows (negative or undefined friction ratio) carry the explicit
// NotApplicable state, distinct from a run that exhausted its iteration
// budget.
type ConvergenceState int

const (
	// NotApplicable marks rows the solver never iterated on.
	NotApplicable ConvergenceState = iota
	// NotConverged marks rows that exhausted the iteration budget.
	NotConverged
	// Converged marks rows where the stress exponent stabilized within
	// tolerance.
	Converged
)

// String returns the string representation of the state.
func (s ConvergenceState) String() string {
	switch s {
	case Converged:
		return "converged"
	case NotConverged:
		return "not_converged"
	case NotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}
