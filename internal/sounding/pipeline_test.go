package sounding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cptcli/internal/config"
)

func TestPipeline(t *testing.T) {
	ctx := context.Background()

	// 5-row sounding with a faulted sleeve friction reading in row 3
	records := []Record{
		{Depth: 1.0, Qc: 5.0, Fs: 50, U2: 110, U0: 9.81},
		{Depth: 2.0, Qc: 5.5, Fs: 52, U2: 120, U0: 19.62},
		{Depth: 3.0, Qc: 6.0, Fs: -9999, U2: 130, U0: 29.43},
		{Depth: 4.0, Qc: 6.5, Fs: 56, U2: 140, U0: 39.24},
		{Depth: 5.0, Qc: 7.0, Fs: 58, U2: 150, U0: 49.05},
	}

	t.Run("end to end with sentinel removal", func(t *testing.T) {
		cfg := config.Default()
		pipeline := NewPipeline(cfg, nil)

		results, err := pipeline.Run(ctx, records, RunOptions{Clean: CleanRemove})
		require.NoError(t, err)
		require.Len(t, results, 4, "the flagged row is dropped")

		for _, res := range results {
			assert.NotEqual(t, 3.0, res.Depth, "row 3 must be excluded")

			assert.InDelta(t, res.SigmaVTot-res.U0, res.SigmaVEff, 1e-9)
			assert.False(t, math.IsNaN(res.Fr))
			assert.False(t, math.IsNaN(res.Bq))
			assert.False(t, math.IsInf(res.Fr, 0))
			assert.False(t, math.IsInf(res.Bq, 0))
			assert.Equal(t, Converged, res.Convergence)
			assert.False(t, math.IsNaN(res.Ic))
		}
	})

	t.Run("replace mode keeps the depth trace", func(t *testing.T) {
		cfg := config.Default()
		pipeline := NewPipeline(cfg, nil)

		results, err := pipeline.Run(ctx, records, RunOptions{Clean: CleanReplace})
		require.NoError(t, err)
		require.Len(t, results, 5)

		flagged := results[2]
		assert.Equal(t, 3.0, flagged.Depth)
		assert.True(t, math.IsNaN(flagged.Fs))
		assert.True(t, math.IsNaN(flagged.Fr))
		assert.Equal(t, NotApplicable, flagged.Convergence)
	})

	t.Run("depth regularization feeds downstream stages", func(t *testing.T) {
		cfg := config.Default()
		pipeline := NewPipeline(cfg, nil)

		start := 0.0
		spacing := 0.5
		results, err := pipeline.Run(ctx, records, RunOptions{
			Clean:           CleanRemove,
			RegularizeDepth: true,
			Depth:           DepthOptions{Start: &start, Spacing: &spacing},
		})
		require.NoError(t, err)
		require.Len(t, results, 4)

		for i, res := range results {
			assert.InDelta(t, float64(i)*0.5, res.Depth, 1e-12)
			assert.InDelta(t, cfg.GammaSoil*res.Depth, res.SigmaVTot, 1e-9)
		}
	})

	t.Run("depth stage failure aborts the run", func(t *testing.T) {
		cfg := config.Default()
		pipeline := NewPipeline(cfg, nil)

		_, err := pipeline.Run(ctx, nil, RunOptions{RegularizeDepth: true})
		assert.Error(t, err)
	})

	t.Run("smoothing window from configuration", func(t *testing.T) {
		cfg := config.Default()
		cfg.RollingWindow = 3
		pipeline := NewPipeline(cfg, nil)

		results, err := pipeline.Run(ctx, records, RunOptions{Clean: CleanRemove})
		require.NoError(t, err)

		assert.True(t, math.IsNaN(results[0].FsSmoothed))
		assert.True(t, math.IsNaN(results[len(results)-1].FsSmoothed))
		assert.False(t, math.IsNaN(results[1].FsSmoothed))
	})

	t.Run("explicit replacement value", func(t *testing.T) {
		cfg := config.Default()
		pipeline := NewPipeline(cfg, nil)

		results, err := pipeline.Run(ctx, records, RunOptions{
			Clean:          CleanReplace,
			Replacement:    0,
			ReplacementSet: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 0.0, results[2].Fs)
	})
}
