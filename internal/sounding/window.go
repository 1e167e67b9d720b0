package sounding

import (
	"fmt"
	"math"
)

// AggregateFunc reduces a window of values to a single value.
type AggregateFunc func(values []float64) float64

// RollingCentered applies agg over a centered window of odd width. The
// width/2 rows nearest each edge have no full centered window and get an
// explicit NaN rather than a partial-window result. Width 1 degenerates to
// a per-element application of agg.
func RollingCentered(values []float64, width int, agg AggregateFunc) ([]float64, error) {
	if width < 1 || width%2 == 0 {
		return nil, fmt.Errorf("rolling window width must be a positive odd number, got %d", width)
	}

	half := width / 2
	out := make([]float64, len(values))
	for i := range values {
		if i < half || i+half >= len(values) {
			out[i] = math.NaN()
			continue
		}
		out[i] = agg(values[i-half : i+half+1])
	}
	return out, nil
}

// Mean is the arithmetic mean aggregation used for fs/qt smoothing. NaN
// inputs propagate into the result.
func Mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
