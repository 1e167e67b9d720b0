package sounding

// RemoveRows returns a new table without the rows where any column value
// equals any of the indicator codes. Matching is exact floating-point
// equality across all columns of a row; the relative order of kept rows is
// preserved.
func RemoveRows(records []Record, indicators []float64) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !matchesAny(r, indicators) {
			out = append(out, r)
		}
	}
	return out
}

// ReplaceRows returns a new table of the same length where every row with
// any column equal to any indicator code has all columns except depth set
// to replacement (typically NaN). Depth is the traceability anchor and is
// never overwritten; rows without a match are copied unchanged.
func ReplaceRows(records []Record, indicators []float64, replacement float64) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if matchesAny(r, indicators) {
			out[i] = Record{
				Depth: r.Depth,
				Qc:    replacement,
				Fs:    replacement,
				U2:    replacement,
				U0:    replacement,
			}
		} else {
			out[i] = r
		}
	}
	return out
}

// matchesAny reports whether any column of the row equals any indicator.
// NaN indicators never match, per IEEE 754 equality.
func matchesAny(r Record, indicators []float64) bool {
	for _, v := range r.values() {
		for _, code := range indicators {
			if v == code {
				return true
			}
		}
	}
	return false
}
