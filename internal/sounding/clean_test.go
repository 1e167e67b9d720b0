package sounding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSentinels = []float64{-9999, -8888, -7777}

func sampleRecords() []Record {
	return []Record{
		{Depth: 1.0, Qc: 5.2, Fs: 48, U2: 110, U0: 9.81},
		{Depth: 1.5, Qc: 5.5, Fs: -9999, U2: 115, U0: 14.7},
		{Depth: 2.0, Qc: 6.1, Fs: 55, U2: 120, U0: 19.6},
		{Depth: 2.5, Qc: -8888, Fs: 58, U2: -7777, U0: 24.5},
		{Depth: 3.0, Qc: 6.8, Fs: 61, U2: 131, U0: 29.4},
	}
}

func TestRemoveRows(t *testing.T) {
	t.Run("drops rows with any sentinel in any column", func(t *testing.T) {
		records := sampleRecords()
		cleaned := RemoveRows(records, testSentinels)

		require.Len(t, cleaned, 3)
		assert.Equal(t, []float64{1.0, 2.0, 3.0}, depths(cleaned))
	})

	t.Run("no sentinel leaves the table untouched", func(t *testing.T) {
		records := sampleRecords()[:1]
		cleaned := RemoveRows(records, testSentinels)

		assert.Equal(t, records, cleaned)
	})

	t.Run("never contains an indicator value afterwards", func(t *testing.T) {
		cleaned := RemoveRows(sampleRecords(), testSentinels)

		for _, r := range cleaned {
			for _, v := range r.values() {
				for _, code := range testSentinels {
					assert.NotEqual(t, code, v)
				}
			}
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		records := sampleRecords()
		RemoveRows(records, testSentinels)

		assert.Equal(t, sampleRecords(), records)
	})
}

func TestReplaceRows(t *testing.T) {
	t.Run("preserves row count and depth column", func(t *testing.T) {
		records := sampleRecords()
		replaced := ReplaceRows(records, testSentinels, math.NaN())

		require.Len(t, replaced, len(records))
		assert.Equal(t, depths(records), depths(replaced))
	})

	t.Run("blanks every non-depth column of flagged rows", func(t *testing.T) {
		replaced := ReplaceRows(sampleRecords(), testSentinels, math.NaN())

		for _, i := range []int{1, 3} {
			r := replaced[i]
			assert.False(t, math.IsNaN(r.Depth), "depth must survive")
			assert.True(t, math.IsNaN(r.Qc))
			assert.True(t, math.IsNaN(r.Fs))
			assert.True(t, math.IsNaN(r.U2))
			assert.True(t, math.IsNaN(r.U0))
		}
	})

	t.Run("leaves unflagged rows bit-identical", func(t *testing.T) {
		records := sampleRecords()
		replaced := ReplaceRows(records, testSentinels, math.NaN())

		for _, i := range []int{0, 2, 4} {
			assert.Equal(t, records[i], replaced[i])
		}
	})

	t.Run("is idempotent for a replacement outside the indicator set", func(t *testing.T) {
		const replacement = -1.0
		once := ReplaceRows(sampleRecords(), testSentinels, replacement)
		twice := ReplaceRows(once, testSentinels, replacement)

		assert.Equal(t, once, twice)
	})

	t.Run("sentinel in the depth column still flags the row", func(t *testing.T) {
		records := []Record{{Depth: -9999, Qc: 5, Fs: 50, U2: 100, U0: 10}}
		replaced := ReplaceRows(records, testSentinels, math.NaN())

		assert.Equal(t, -9999.0, replaced[0].Depth, "depth is never overwritten")
		assert.True(t, math.IsNaN(replaced[0].Qc))
	})
}

func depths(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Depth
	}
	return out
}
