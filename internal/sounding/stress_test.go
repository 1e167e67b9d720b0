package sounding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressComputer(t *testing.T) {
	ctx := context.Background()

	records := []Record{
		{Depth: 1.0, Qc: 5.0, Fs: 50, U2: 110, U0: 9.81},
		{Depth: 2.0, Qc: 5.5, Fs: 52, U2: 120, U0: 19.62},
		{Depth: 3.0, Qc: 6.0, Fs: 54, U2: 130, U0: 29.43},
		{Depth: 4.0, Qc: 6.5, Fs: 56, U2: 140, U0: 39.24},
	}

	t.Run("stress and resistance formulas", func(t *testing.T) {
		computer := NewStressComputer(0.8, 18.5, 1, nil)
		results, err := computer.Compute(ctx, records)
		require.NoError(t, err)
		require.Len(t, results, len(records))

		for i, res := range results {
			r := records[i]
			assert.InDelta(t, 18.5*r.Depth, res.SigmaVTot, 1e-9)
			assert.InDelta(t, res.SigmaVTot-r.U0, res.SigmaVEff, 1e-9)
			assert.InDelta(t, r.Qc+0.2*r.U2/1000, res.Qt, 1e-9)
		}
	})

	t.Run("window 1 keeps raw fs and qt", func(t *testing.T) {
		computer := NewStressComputer(0.8, 18.5, 1, nil)
		results, err := computer.Compute(ctx, records)
		require.NoError(t, err)

		for _, res := range results {
			assert.Equal(t, res.Fs, res.FsSmoothed)
			assert.Equal(t, res.Qt, res.QtSmoothed)
			assert.False(t, math.IsNaN(res.Fr))
			assert.False(t, math.IsNaN(res.Bq))
		}
	})

	t.Run("window 3 blanks one row at each edge", func(t *testing.T) {
		computer := NewStressComputer(0.8, 18.5, 3, nil)
		results, err := computer.Compute(ctx, records)
		require.NoError(t, err)

		assert.True(t, math.IsNaN(results[0].FsSmoothed))
		assert.True(t, math.IsNaN(results[0].Fr))
		assert.True(t, math.IsNaN(results[len(results)-1].Bq))

		assert.InDelta(t, (50.0+52.0+54.0)/3, results[1].FsSmoothed, 1e-9)
		assert.InDelta(t, (results[0].Qt+results[1].Qt+results[2].Qt)/3, results[1].QtSmoothed, 1e-9)
	})

	t.Run("normalized ratios follow the smoothed columns", func(t *testing.T) {
		computer := NewStressComputer(0.8, 18.5, 3, nil)
		results, err := computer.Compute(ctx, records)
		require.NoError(t, err)

		res := results[1]
		net := res.QtSmoothed*1000 - res.SigmaVTot
		assert.InDelta(t, res.FsSmoothed/net*100, res.Fr, 1e-9)
		assert.InDelta(t, (res.U2-res.U0)/net, res.Bq, 1e-9)
	})

	t.Run("zero denominator propagates as infinity", func(t *testing.T) {
		// qt*1000 == sigma_v_tot: depth 10 at gamma 20 gives 200 kPa,
		// qc 0.2 MPa with a=1 keeps qt at 0.2 MPa = 200 kPa.
		rows := []Record{{Depth: 10, Qc: 0.2, Fs: 30, U2: 50, U0: 10}}
		computer := NewStressComputer(1.0, 20.0, 1, nil)

		results, err := computer.Compute(ctx, rows)
		require.NoError(t, err)

		assert.True(t, math.IsInf(results[0].Fr, 1))
		assert.True(t, math.IsInf(results[0].Bq, 1))
	})

	t.Run("does not mutate the input records", func(t *testing.T) {
		input := append([]Record(nil), records...)
		computer := NewStressComputer(0.8, 18.5, 3, nil)

		_, err := computer.Compute(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, records, input)
	})

	t.Run("rejects an invalid window", func(t *testing.T) {
		computer := NewStressComputer(0.8, 18.5, 2, nil)
		_, err := computer.Compute(ctx, records)
		assert.Error(t, err)
	})
}
