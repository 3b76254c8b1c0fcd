package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajal/microns-kit/internal/core/domain"
)

func TestNormalize(t *testing.T) {
	t.Run("rescales to new range", func(t *testing.T) {
		got, err := Normalize([]float64{0, 5, 10}, 0, 10, 0, 1)

		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0, 0.5, 1}, got, 1e-12)
	})

	t.Run("handles negative target range", func(t *testing.T) {
		got, err := Normalize([]float64{0, 10}, 0, 10, -1, 1)

		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-1, 1}, got, 1e-12)
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []float64{1, 2}
		_, err := Normalize(in, 0, 10, 0, 1)

		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, in)
	})

	t.Run("degenerate source range errors", func(t *testing.T) {
		_, err := Normalize([]float64{1}, 5, 5, 0, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestKDE(t *testing.T) {
	t.Run("density peaks near the sample mean", func(t *testing.T) {
		data := []float64{-0.2, -0.1, 0, 0.1, 0.2}

		grid, pdf, err := KDE(data, 101, KDEOptions{Bounds: &[2]float64{-2, 2}})

		require.NoError(t, err)
		require.Len(t, grid, 101)
		require.Len(t, pdf, 101)

		peak := 0
		for i, v := range pdf {
			if v > pdf[peak] {
				peak = i
			}
		}
		assert.InDelta(t, 0, grid[peak], 0.1)
	})

	t.Run("density integrates to roughly one", func(t *testing.T) {
		data := []float64{-1, -0.5, 0, 0.5, 1, 0.2, -0.2, 0.7}

		grid, pdf, err := KDE(data, 400, KDEOptions{Bounds: &[2]float64{-10, 10}})

		require.NoError(t, err)
		step := grid[1] - grid[0]
		var integral float64
		for _, v := range pdf {
			integral += v * step
		}
		assert.InDelta(t, 1.0, integral, 0.05)
	})

	t.Run("explicit bandwidth", func(t *testing.T) {
		_, pdf, err := KDE([]float64{0, 0, 0}, 11, KDEOptions{
			Bounds:    &[2]float64{-1, 1},
			Bandwidth: 0.5,
		})

		require.NoError(t, err)
		assert.Greater(t, pdf[5], pdf[0])
	})

	t.Run("zero variance without bandwidth errors", func(t *testing.T) {
		_, _, err := KDE([]float64{3, 3, 3}, 10, KDEOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty data errors", func(t *testing.T) {
		_, _, err := KDE(nil, 10, KDEOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("too few bins errors", func(t *testing.T) {
		_, _, err := KDE([]float64{1, 2}, 1, KDEOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad bounds error", func(t *testing.T) {
		_, _, err := KDE([]float64{1, 2}, 10, KDEOptions{Bounds: &[2]float64{1, 1}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("auto bounds from data", func(t *testing.T) {
		grid, _, err := KDE([]float64{2, 4, 6}, 3, KDEOptions{})

		require.NoError(t, err)
		assert.Equal(t, 2.0, grid[0])
		assert.Equal(t, 6.0, grid[len(grid)-1])
	})
}
