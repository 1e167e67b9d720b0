package sounding

import (
	"fmt"
	"math"

	apperrors "cptcli/internal/errors"
)

// DepthOptions configures the optional depth regularization stage. A nil
// field means "infer from the data".
type DepthOptions struct {
	// Start is the depth of the first row. Defaults to the existing first
	// depth value.
	Start *float64
	// Spacing is the increment between consecutive rows. Defaults to the
	// mean of the successive differences of the existing depth column,
	// ignoring NaN, rounded to 3 decimal places.
	Spacing *float64
}

// AdjustDepth returns a new table whose depth column is the arithmetic
// progression depth[i] = start + i*spacing. All other columns pass through
// unchanged. Field depth encoders drift and skip readings; regenerating the
// progression restores a regular grid for downstream interpolation.
func AdjustDepth(records []Record, opts DepthOptions) ([]Record, error) {
	const op = "adjust depth"

	if len(records) == 0 {
		return nil, apperrors.NewInvalidDataError(op, "table is empty")
	}
	if len(records) == 1 && opts.Spacing == nil {
		return nil, apperrors.NewInvalidDataError(op,
			"table has a single row and no spacing was supplied; spacing cannot be inferred from one point")
	}

	start := records[0].Depth
	if opts.Start != nil {
		start = *opts.Start
	}
	if math.IsNaN(start) {
		return nil, apperrors.NewInvalidDataError(op, "depth column has no valid first value")
	}

	var spacing float64
	if opts.Spacing != nil {
		spacing = *opts.Spacing
	} else {
		inferred, err := meanSpacing(records)
		if err != nil {
			return nil, err
		}
		spacing = inferred
	}

	// spacing is reported to the millimetre
	spacing = math.Round(spacing*1000) / 1000

	out := make([]Record, len(records))
	for i, r := range records {
		r.Depth = start + float64(i)*spacing
		out[i] = r
	}
	return out, nil
}

// meanSpacing averages the successive differences of the depth column,
// skipping differences that involve a NaN depth.
func meanSpacing(records []Record) (float64, error) {
	var sum float64
	var count int
	for i := 1; i < len(records); i++ {
		diff := records[i].Depth - records[i-1].Depth
		if math.IsNaN(diff) {
			continue
		}
		sum += diff
		count++
	}
	if count == 0 {
		return 0, apperrors.NewInvalidDataError("adjust depth",
			fmt.Sprintf("no finite successive depth differences in %d rows; spacing cannot be inferred", len(records)))
	}
	return sum / float64(count), nil
}
